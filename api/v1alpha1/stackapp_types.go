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

package v1alpha1

import (
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// EnvVar is a plaintext environment variable injected into a container.
type EnvVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SecretEnvVar is an environment variable sourced from a Kubernetes secret.
type SecretEnvVar struct {
	Name      string `json:"name"`
	SecretName string `json:"secretName"`
	SecretKey string `json:"secretKey"`
}

// WebInit configures an optional init container run before the main service
// container starts.
type WebInit struct {
	Image     string         `json:"image"`
	Env       []EnvVar       `json:"env,omitempty"`
	SecretEnv []SecretEnvVar `json:"secretEnv,omitempty"`

	// DatabaseURL, if set, names the env var that receives the application
	// DATABASE_URL (from database-urls/application-url).
	DatabaseURL *string `json:"databaseUrl,omitempty"`
	// MigrationsDatabaseURL names the env var for the migrations/superuser URL.
	MigrationsDatabaseURL *string `json:"migrationsDatabaseUrl,omitempty"`
	// ReadonlyDatabaseURL names the env var for the readonly URL.
	ReadonlyDatabaseURL *string `json:"readonlyDatabaseUrl,omitempty"`
}

// ServiceSpec describes one deployable application container — either the
// required web service or one of the user's extra services.
type ServiceSpec struct {
	// Image is a fully-qualified container image reference.
	Image string `json:"image"`

	// Port is the container port the service listens on. Required for
	// services.web; optional (but conventionally set) for extras.
	Port int32 `json:"port,omitempty"`

	Env       []EnvVar       `json:"env,omitempty"`
	SecretEnv []SecretEnvVar `json:"secretEnv,omitempty"`

	Init *WebInit `json:"init,omitempty"`

	DatabaseURL           *string `json:"databaseUrl,omitempty"`
	MigrationsDatabaseURL *string `json:"migrationsDatabaseUrl,omitempty"`
	ReadonlyDatabaseURL   *string `json:"readonlyDatabaseUrl,omitempty"`
}

// Services holds the required web service and an open set of named extra
// services. The extra map is schema-open (unknown keys preserved) so that
// user-defined service names validate without a CRD change.
// +kubebuilder:pruning:PreserveUnknownFields
type Services struct {
	Web   ServiceSpec            `json:"web"`
	Extra map[string]ServiceSpec `json:"-"`
}

// DbConfig configures the bundled Postgres cluster.
type DbConfig struct {
	// DangerOverridePassword bypasses generated credentials. Local dev only.
	DangerOverridePassword *string `json:"dangerOverridePassword,omitempty"`
	// ExposeDbPort, if set, requests a NodePort exposing Postgres.
	ExposeDbPort *int32 `json:"exposeDbPort,omitempty"`
	// DiskSizeGB overrides the default CNPG volume size.
	DiskSizeGB *int32 `json:"diskSizeGb,omitempty"`
}

// OidcConfig configures the Keycloak-realm + oauth2-proxy authentication path.
type OidcConfig struct {
	HostnameURL   *string `json:"hostnameUrl,omitempty"`
	ExposeAuthPort *int32 `json:"exposeAuthPort,omitempty"`
	ExposeAdmin   *bool   `json:"exposeAdmin,omitempty"`
}

// SupabaseAuthConfig configures the GoTrue (Supabase Auth) deployment.
type SupabaseAuthConfig struct {
	APIExternalURL string `json:"apiExternalUrl"`
	SiteURL        string `json:"siteUrl"`
}

// StorageConfig configures the object-storage component.
type StorageConfig struct {
	// S3SecretName, if set, points to a user-supplied secret carrying S3
	// credentials instead of the bundled MinIO defaults.
	S3SecretName *string `json:"s3SecretName,omitempty"`
	// InstallMinIO deploys the bundled MinIO instance. Defaults to true when
	// S3SecretName is unset.
	InstallMinIO *bool `json:"installMinio,omitempty"`
	// InstallDBRoles toggles Storage's own DB-role init container.
	InstallDBRoles *bool `json:"installDbRoles,omitempty"`
}

// IngressConfig exposes nginx via a NodePort.
type IngressConfig struct {
	Port *int32 `json:"port,omitempty"`
}

// CloudflareConfig configures the Cloudflare tunnel sub-reconciler.
type CloudflareConfig struct {
	// SecretName, if set, selects token-mode; omitted for a quick tunnel.
	SecretName *string `json:"secretName,omitempty"`
}

// RestConfig configures the PostgREST deployment.
type RestConfig struct {
	DBSchemas      *string `json:"dbSchemas,omitempty"`
	ExposeRestPort *int32  `json:"exposeRestPort,omitempty"`
	JWTExpiry      *string `json:"jwtExpiry,omitempty"`
}

// RealtimeConfig configures the Realtime (Phoenix channels) deployment.
// No fields today; presence of the key enables the component.
type RealtimeConfig struct{}

// DocumentEngineConfig configures the document-extraction deployment.
// No fields today; presence of the key enables the component.
type DocumentEngineConfig struct{}

// SeleniumConfig configures the Selenium standalone-browser deployment.
type SeleniumConfig struct {
	Image             *string `json:"image,omitempty"`
	Port              *int32  `json:"port,omitempty"`
	VNCPort           *int32  `json:"vncPort,omitempty"`
	ShmSize           *string `json:"shmSize,omitempty"`
	ExposeWebdriverPort *int32 `json:"exposeWebdriverPort,omitempty"`
	ExposeVNCPort     *int32  `json:"exposeVncPort,omitempty"`
}

// MailhogConfig configures the Mailhog SMTP sink deployment.
type MailhogConfig struct {
	Image          *string `json:"image,omitempty"`
	SMTPPort       *int32  `json:"smtpPort,omitempty"`
	WebPort        *int32  `json:"webPort,omitempty"`
	ExposeSMTPPort *int32  `json:"exposeSmtpPort,omitempty"`
	ExposeWebPort  *int32  `json:"exposeWebPort,omitempty"`
}

// RabbitMqConfig configures the RabbitMQ broker deployment.
type RabbitMqConfig struct {
	Image                 *string `json:"image,omitempty"`
	Port                  *int32  `json:"port,omitempty"`
	ManagementPort        *int32  `json:"managementPort,omitempty"`
	Persistence           *bool   `json:"persistence,omitempty"`
	Size                  *string `json:"size,omitempty"`
	CredentialsSecretName *string `json:"credentialsSecretName,omitempty"`
}

// RedisConfig configures the Redis cache deployment.
type RedisConfig struct {
	Image              *string `json:"image,omitempty"`
	Port               *int32  `json:"port,omitempty"`
	Persistence        *bool   `json:"persistence,omitempty"`
	Size               *string `json:"size,omitempty"`
	PasswordSecretName *string `json:"passwordSecretName,omitempty"`
}

// Components enumerates every optional platform component. Presence of a
// pointer field (non-nil) means the component is enabled. This is a closed,
// named set — not an open plugin registry — per the design notes: adding a
// component requires a schema change here and a dispatch-table change in the
// controller.
type Components struct {
	DB             *DbConfig             `json:"db,omitempty"`
	OIDC           *OidcConfig           `json:"oidc,omitempty"`
	Auth           *SupabaseAuthConfig   `json:"auth,omitempty"`
	Storage        *StorageConfig        `json:"storage,omitempty"`
	Cloudflare     *CloudflareConfig     `json:"cloudflare,omitempty"`
	Ingress        *IngressConfig        `json:"ingress,omitempty"`
	Realtime       *RealtimeConfig       `json:"realtime,omitempty"`
	Rest           *RestConfig           `json:"rest,omitempty"`
	DocumentEngine *DocumentEngineConfig `json:"documentEngine,omitempty"`
	RabbitMQ       *RabbitMqConfig       `json:"rabbitmq,omitempty"`
	Redis          *RedisConfig          `json:"redis,omitempty"`
	Selenium       *SeleniumConfig       `json:"selenium,omitempty"`
	Mailhog        *MailhogConfig        `json:"mailhog,omitempty"`
}

// StackAppSpec defines the desired state of a StackApp: one web service plus
// an enumerated set of optional backend components, in one namespace.
type StackAppSpec struct {
	Services Services `json:"services"`

	// +optional
	Components Components `json:"components,omitempty"`

	// Profiles are keyed overlays deep-merged into the rest of spec when a
	// profile is selected by the caller (the out-of-scope CLI). The
	// Manifest Loader consumes this field; the reconciler never sees it
	// since profile application happens before the document is applied to
	// the cluster.
	// +optional
	Profiles map[string]apiextensionsv1.JSON `json:"profiles,omitempty"`
}

// StackAppStatus captures coarse reconciliation progress. The reconciler
// itself does not gate behavior on this (see Error Handling Design: status
// is not treated as authoritative state), but it aids operators inspecting
// the cluster.
type StackAppStatus struct {
	// ObservedGeneration is the most recently reconciled generation.
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// Conditions report the outcome of the most recent reconciliation pass.
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

//+kubebuilder:object:root=true
//+kubebuilder:subresource:status
//+kubebuilder:printcolumn:name="Image",type=string,JSONPath=`.spec.services.web.image`
//+kubebuilder:printcolumn:name="Port",type=integer,JSONPath=`.spec.services.web.port`
//+kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// StackApp is the Schema for the stackapps API.
type StackApp struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   StackAppSpec   `json:"spec,omitempty"`
	Status StackAppStatus `json:"status,omitempty"`
}

//+kubebuilder:object:root=true

// StackAppList contains a list of StackApp.
type StackAppList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []StackApp `json:"items"`
}

// MarshalServices and the custom (un)marshaling that implement the
// flatten-with-preserve-unknown-fields semantics for Services live in
// services_marshal.go, kept separate from the generated-looking type
// declarations above.

func init() {
	SchemeBuilder.Register(&StackApp{}, &StackAppList{})
}

// ReservedServiceNames are the component names a user-defined extra service
// must not collide with (spec §3 invariants).
var ReservedServiceNames = map[string]bool{
	"web_app":         true,
	"nginx":           true,
	"rest":            true,
	"realtime":        true,
	"storage":         true,
	"document-engine": true,
	"selenium":        true,
	"mailhog":         true,
	"rabbitmq":        true,
	"redis":           true,
	"oauth2-proxy":    true,
	"cloudflared":     true,
	"minio":           true,
}
