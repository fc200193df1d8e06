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
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

const (
	dbOwnerSecretName  = "db-owner"
	databaseURLsSecret = "database-urls"
	dbRolesSecretName  = "db-roles"
	dbHashAnnotation   = "stack-cli.dev/spec-hash"
	dbDefaultDiskGB    = 5

	dbAppRole           = "app"
	dbReadonlyRole      = "readonly"
	dbAuthenticatorRole = "authenticator"
)

var cnpgClusterGVK = schema.GroupVersionKind{Group: "postgresql.cnpg.io", Version: "v1", Kind: "Cluster"}

// ClusterName returns the CNPG Cluster name for the given StackApp, unlike
// the original's fixed STACK_DB_CLUSTER_NAME since one operator manages
// many StackApps.
func ClusterName(stackName string) string {
	return stackName + "-db-cluster"
}

// DeployDatabase ensures the db-owner credentials secret, the CNPG Cluster
// CR, and the database-urls secret exist for stackName.
func DeployDatabase(ctx context.Context, c client.Client, namespace, stackName string, diskGB int32, passwordOverride *string) error {
	if diskGB == 0 {
		diskGB = dbDefaultDiskGB
	}

	ownerData, err := EnsureSecret(ctx, c, namespace, dbOwnerSecretName, AppLabels(stackName, "db"), func() (map[string][]byte, error) {
		password := ""
		if passwordOverride != nil {
			password = *passwordOverride
		} else {
			generated, err := RandomToken(32)
			if err != nil {
				return nil, err
			}
			password = generated
		}
		return map[string][]byte{"username": []byte("db-owner"), "password": []byte(password)}, nil
	})
	if err != nil {
		return err
	}

	// rolesData holds the passwords for the app-scoped, readonly, and
	// authenticator roles postInitApplicationSQL provisions below. Generated
	// once and persisted like every other credential in this package, so a
	// second reconcile embeds the same passwords even though CNPG only runs
	// postInitApplicationSQL on the Cluster's very first bootstrap.
	rolesData, err := EnsureSecret(ctx, c, namespace, dbRolesSecretName, AppLabels(stackName, "db"), func() (map[string][]byte, error) {
		appPassword, err := RandomToken(32)
		if err != nil {
			return nil, err
		}
		readonlyPassword, err := RandomToken(32)
		if err != nil {
			return nil, err
		}
		authenticatorPassword, err := RandomToken(32)
		if err != nil {
			return nil, err
		}
		return map[string][]byte{
			"app-password":           []byte(appPassword),
			"readonly-password":      []byte(readonlyPassword),
			"authenticator-password": []byte(authenticatorPassword),
		}, nil
	})
	if err != nil {
		return err
	}

	clusterName := ClusterName(stackName)
	doc := buildClusterDoc(clusterName, diskGB, dbOwnerSecretName, rolesData)
	hash := hashDoc(doc)
	if err := ApplyRawHashed(ctx, c, cnpgClusterGVK, namespace, clusterName, dbHashAnnotation, hash, doc); err != nil {
		return err
	}

	password := string(ownerData["password"])
	host := fmt.Sprintf("%s-rw", clusterName)
	readonlyHost := fmt.Sprintf("%s-ro", clusterName)
	migrationsURL := fmt.Sprintf("postgres://db-owner:%s@%s:5432/stack-app", password, host)
	appURL := fmt.Sprintf("postgres://%s:%s@%s:5432/stack-app", dbAppRole, rolesData["app-password"], host)
	readonlyURL := fmt.Sprintf("postgres://%s:%s@%s:5432/stack-app", dbReadonlyRole, rolesData["readonly-password"], readonlyHost)
	authenticatorURL := fmt.Sprintf("postgres://%s:%s@%s:5432/stack-app", dbAuthenticatorRole, rolesData["authenticator-password"], host)

	_, err = EnsureSecret(ctx, c, namespace, databaseURLsSecret, AppLabels(stackName, "db"), func() (map[string][]byte, error) {
		return map[string][]byte{
			"application-url":   []byte(appURL),
			"migrations-url":    []byte(migrationsURL),
			"readonly-url":      []byte(readonlyURL),
			"authenticator-url": []byte(authenticatorURL),
		}, nil
	})
	return err
}

// buildClusterDoc renders the CNPG Cluster CR. postInitApplicationSQL runs
// once, as superuser, right after initdb creates the owner-held app
// database — the same place auth.go/realtime.go's init-container psql
// bootstraps run their DDL, except CNPG executes this batch itself rather
// than a sidecar container. It creates the anon/authenticated/service_role
// marker roles PostgREST's authenticator role SETs ROLE into, the
// app-scoped and readonly roles application-url/readonly-url connect as,
// and grants each the schema access spec.md §4.4 requires.
func buildClusterDoc(name string, diskGB int32, ownerSecret string, roles map[string][]byte) map[string]any {
	bootstrapSQL := []any{
		`DO $$ BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_roles WHERE rolname = 'anon') THEN CREATE ROLE anon NOLOGIN NOINHERIT; END IF;
			IF NOT EXISTS (SELECT 1 FROM pg_roles WHERE rolname = 'authenticated') THEN CREATE ROLE authenticated NOLOGIN NOINHERIT; END IF;
			IF NOT EXISTS (SELECT 1 FROM pg_roles WHERE rolname = 'service_role') THEN CREATE ROLE service_role NOLOGIN NOINHERIT BYPASSRLS; END IF;
		END $$;`,
		fmt.Sprintf(`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_roles WHERE rolname = '%s') THEN CREATE ROLE %s LOGIN PASSWORD '%s'; END IF; END $$;`,
			dbAppRole, dbAppRole, roles["app-password"]),
		fmt.Sprintf(`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_roles WHERE rolname = '%s') THEN CREATE ROLE %s LOGIN PASSWORD '%s'; END IF; END $$;`,
			dbReadonlyRole, dbReadonlyRole, roles["readonly-password"]),
		fmt.Sprintf(`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_roles WHERE rolname = '%s') THEN CREATE ROLE %s LOGIN NOINHERIT PASSWORD '%s'; END IF; END $$;`,
			dbAuthenticatorRole, dbAuthenticatorRole, roles["authenticator-password"]),
		fmt.Sprintf(`GRANT anon, authenticated, service_role TO %s;`, dbAuthenticatorRole),
		fmt.Sprintf(`GRANT ALL PRIVILEGES ON SCHEMA public TO %s;`, dbAppRole),
		fmt.Sprintf(`GRANT USAGE ON SCHEMA public TO anon, authenticated, service_role, %s;`, dbReadonlyRole),
		fmt.Sprintf(`GRANT SELECT ON ALL TABLES IN SCHEMA public TO %s;`, dbReadonlyRole),
		fmt.Sprintf(`ALTER DEFAULT PRIVILEGES IN SCHEMA public GRANT SELECT ON TABLES TO %s;`, dbReadonlyRole),
	}

	return map[string]any{
		"apiVersion": "postgresql.cnpg.io/v1",
		"kind":       "Cluster",
		"metadata":   map[string]any{"name": name},
		"spec": map[string]any{
			"instances": int64(1),
			"bootstrap": map[string]any{
				"initdb": map[string]any{
					"database":               "stack-app",
					"owner":                  "db-owner",
					"secret":                 map[string]any{"name": ownerSecret},
					"postInitApplicationSQL": bootstrapSQL,
				},
			},
			"storage": map[string]any{
				"size": fmt.Sprintf("%dGi", diskGB),
			},
		},
	}
}

func hashDoc(doc map[string]any) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%v", doc)))
	return hex.EncodeToString(sum[:])[:16]
}

// DeleteDatabase removes the CNPG Cluster CR (which cascades its PVCs per
// the CNPG operator's own finalizer) and the secrets this reconciler owns.
func DeleteDatabase(ctx context.Context, c client.Client, namespace, stackName string) error {
	cluster := &unstructured.Unstructured{}
	cluster.SetGroupVersionKind(cnpgClusterGVK)
	cluster.SetNamespace(namespace)
	cluster.SetName(ClusterName(stackName))
	if err := DeleteIfExists(ctx, c, cluster); err != nil {
		return err
	}
	if err := DeleteIfExists(ctx, c, secretStub(namespace, dbOwnerSecretName)); err != nil {
		return err
	}
	if err := DeleteIfExists(ctx, c, secretStub(namespace, dbRolesSecretName)); err != nil {
		return err
	}
	return DeleteIfExists(ctx, c, secretStub(namespace, databaseURLsSecret))
}
