/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package operator

import (
	"context"
	"fmt"

	stackv1alpha1 "github.com/stack-cli/stack-operator/api/v1alpha1"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

const (
	storageName       = "storage"
	storageDefaultImage = "supabase/storage-api:v1.33.0"
	storageDefaultPort  = int32(5000)
	storageS3SecretName = "storage-s3"
	storageMinioName    = "minio"
	storageMinioImage   = "minio/minio:RELEASE.2024-01-16T16-07-38Z"
	storageMinioPort    = int32(9000)

	// storageDBUser owns the storage schema, mirroring the local-dev
	// dedicated-role pattern auth.go uses for supabase_auth_admin.
	storageDBUser             = "storage_admin"
	storageDBBootstrapPassword = "testpassword"
)

// storageDBHost returns the CNPG primary service storage's DB-role init
// container connects to, matching auth.go/realtime.go's own host derivation.
func storageDBHost(stackName string) string {
	return ClusterName(stackName) + "-rw"
}

// DeployStorage ensures the storage-s3 credentials secret, an optional
// bundled MinIO deployment, and the storage-api Deployment, reproducing the
// baseline behavior of the original storage service enriched with the
// fuller MinIO/init-container description the spec adds.
func DeployStorage(ctx context.Context, c client.Client, namespace, stackName string, cfg *stackv1alpha1.StorageConfig) error {
	installMinIO := cfg == nil || cfg.S3SecretName == nil
	if cfg != nil && cfg.InstallMinIO != nil {
		installMinIO = *cfg.InstallMinIO
	}

	s3SecretName := storageS3SecretName
	if cfg != nil && cfg.S3SecretName != nil {
		s3SecretName = *cfg.S3SecretName
	} else {
		if _, err := EnsureSecret(ctx, c, namespace, storageS3SecretName, AppLabels(stackName, storageName), func() (map[string][]byte, error) {
			accessKey, err := RandomToken(20)
			if err != nil {
				return nil, err
			}
			secretKey, err := RandomToken(40)
			if err != nil {
				return nil, err
			}
			return map[string][]byte{
				"access-key-id":     []byte(accessKey),
				"secret-access-key": []byte(secretKey),
			}, nil
		}); err != nil {
			return err
		}
	}

	if installMinIO {
		secret, found, err := GetSecret(ctx, c, namespace, s3SecretName)
		if err != nil {
			return err
		}
		if !found {
			return &CredentialMissingError{Secret: s3SecretName, Key: "access-key-id"}
		}
		accessKey, _ := ReadSecretField(secret, "access-key-id")
		secretKey, _ := ReadSecretField(secret, "secret-access-key")

		minio := ServiceDeployment{
			Name:  storageMinioName,
			Image: storageMinioImage,
			Port:  ptrInt32(storageMinioPort),
			Env: []corev1.EnvVar{
				{Name: "MINIO_ROOT_USER", Value: accessKey},
				{Name: "MINIO_ROOT_PASSWORD", Value: secretKey},
			},
			Command: []string{"minio", "server", "/data"},
			Volumes: []corev1.Volume{{
				Name:         "minio-data",
				VolumeSource: corev1.VolumeSource{EmptyDir: &corev1.EmptyDirVolumeSource{}},
			}},
			VolumeMounts: []corev1.VolumeMount{{Name: "minio-data", MountPath: "/data"}},
		}
		if err := ApplyServiceDeployment(ctx, c, minio, namespace, false); err != nil {
			return err
		}
	}

	installDBRoles := cfg == nil || cfg.InstallDBRoles == nil || *cfg.InstallDBRoles
	var initContainers []InitContainer
	if installDBRoles {
		bootstrapSQL := fmt.Sprintf(
			`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_roles WHERE rolname = '%[1]s') THEN CREATE USER %[1]s NOINHERIT LOGIN PASSWORD '%[2]s'; END IF; END $$;`+
				`CREATE SCHEMA IF NOT EXISTS storage AUTHORIZATION %[1]s;`+
				`GRANT ALL PRIVILEGES ON SCHEMA storage TO %[1]s;`+
				`GRANT ALL PRIVILEGES ON ALL TABLES IN SCHEMA storage TO %[1]s;`,
			storageDBUser, storageDBBootstrapPassword)

		initContainers = append(initContainers, InitContainer{
			Image: "postgres:16-alpine",
			Env: []corev1.EnvVar{
				{Name: "PGCONNECT_TIMEOUT", Value: "5"},
				{Name: "PGHOST", Value: storageDBHost(stackName)},
				{Name: "PGPORT", Value: "5432"},
				{Name: "PGDATABASE", Value: "stack-app"},
				secretEnvFrom("PGUSER", dbOwnerSecretName, "username"),
				secretEnvFrom("PGPASSWORD", dbOwnerSecretName, "password"),
			},
			Command: []string{"/bin/sh", "-c", "psql -v ON_ERROR_STOP=1 -c \"" + bootstrapSQL + "\""},
		})
	}
	if installMinIO {
		initContainers = append(initContainers, InitContainer{
			Image: "minio/mc:RELEASE.2024-01-13T08-44-48Z",
			Env: []corev1.EnvVar{
				secretEnvFrom("MINIO_ACCESS_KEY", s3SecretName, "access-key-id"),
				secretEnvFrom("MINIO_SECRET_KEY", s3SecretName, "secret-access-key"),
			},
			Command: []string{"sh", "-c", fmt.Sprintf(
				"mc alias set local http://%s:%d \"$MINIO_ACCESS_KEY\" \"$MINIO_SECRET_KEY\" && mc mb --ignore-existing local/stack-storage",
				storageMinioName, storageMinioPort,
			)},
		})
	}

	storage := ServiceDeployment{
		Name:           storageName,
		Image:          storageDefaultImage,
		Port:           ptrInt32(storageDefaultPort),
		InitContainers: initContainers,
		Env: []corev1.EnvVar{
			{Name: "PORT", Value: fmt.Sprintf("%d", storageDefaultPort)},
			secretEnvFrom("DATABASE_URL", databaseURLsSecret, "migrations-url"),
			{Name: "STORAGE_BACKEND", Value: storageBackend(installMinIO)},
			{Name: "FILE_SIZE_LIMIT", Value: "52428800"},
			{Name: "STORAGE_FILE_LOCAL_STORAGE_PATH", Value: "/var/lib/storage"},
			secretEnvFrom("STORAGE_S3_ACCESS_KEY_ID", s3SecretName, "access-key-id"),
			secretEnvFrom("STORAGE_S3_SECRET_ACCESS_KEY", s3SecretName, "secret-access-key"),
		},
		Volumes: []corev1.Volume{{
			Name:         "storage-data",
			VolumeSource: corev1.VolumeSource{EmptyDir: &corev1.EmptyDirVolumeSource{}},
		}},
		VolumeMounts: []corev1.VolumeMount{{Name: "storage-data", MountPath: "/var/lib/storage"}},
	}
	return ApplyServiceDeployment(ctx, c, storage, namespace, false)
}

func storageBackend(minio bool) string {
	if minio {
		return "s3"
	}
	return "file"
}

// DeleteStorage tears down storage and the bundled MinIO deployment.
func DeleteStorage(ctx context.Context, c client.Client, namespace string) error {
	if err := DeleteIfExists(ctx, c, deploymentStub(namespace, storageName)); err != nil {
		return err
	}
	return DeleteIfExists(ctx, c, deploymentStub(namespace, storageMinioName))
}
