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

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

const (
	keycloakAPIGroup      = "k8s.keycloak.org"
	keycloakNamespace     = "keycloak"
	keycloakName           = "keycloak"
	keycloakServiceName    = "keycloak-service"
	keycloakInternalURL    = "http://keycloak-service.keycloak.svc.cluster.local:8080"
	realmHashAnnotation    = "stack-cli.dev/realm-hash"
	keycloakInstallHint    = "Keycloak operator is not installed; apply its CRDs and a Keycloak CR to the keycloak namespace before enabling components.oidc"

	oauth2ProxyName         = "oauth2-proxy"
	oauth2ProxyDefaultImage = "quay.io/oauth2-proxy/oauth2-proxy:v7.6.0"
	oauth2ProxyPort         = int32(7900)
	oauth2ProxyCookieSecret = "oauth2-proxy-cookie-secret"
	oidcClientSecretName    = "oidc-client"
)

var (
	keycloakRealmImportGVK = schema.GroupVersionKind{Group: keycloakAPIGroup, Version: "v2alpha1", Kind: "KeycloakRealmImport"}
)

// RealmConfig describes the Keycloak realm an app's OIDC component needs.
// The realm name is always the app's namespace, so the upsert and delete
// paths agree on the same KeycloakRealmImport resource name without
// threading an extra identifier through the controller.
type RealmConfig struct {
	Namespace         string
	ClientID          string
	ClientSecret      string
	RedirectURIs      []string
	AllowRegistration bool
	PublicBaseURL     string
}

func realmResourceName(namespace string) string {
	return "keycloak-realm-" + namespace
}

// EnsureRealm upserts the app's Keycloak realm and client, and the
// ExternalName Service that lets the app's namespace reach the shared
// Keycloak instance in the keycloak namespace as "keycloak-service".
func EnsureRealm(ctx context.Context, c client.Client, cfg RealmConfig) error {
	if err := ensureKeycloakAlias(ctx, c, cfg.Namespace); err != nil {
		return err
	}

	resourceName := realmResourceName(cfg.Namespace)
	hash := realmHash(cfg)
	doc := map[string]any{
		"apiVersion": keycloakAPIGroup + "/v2alpha1",
		"kind":       "KeycloakRealmImport",
		"spec": map[string]any{
			"keycloakCRName": keycloakName,
			"realm": map[string]any{
				"realm":                       cfg.Namespace,
				"enabled":                     true,
				"registrationAllowed":         cfg.AllowRegistration,
				"registrationEmailAsUsername": true,
				"sslRequired":                 "none",
				"loginTheme":                  "stack-cli",
				"attributes": map[string]any{
					"frontendUrl": cfg.PublicBaseURL,
				},
				"clients": []any{
					map[string]any{
						"clientId":                  cfg.ClientID,
						"clientAuthenticatorType":   "client-secret",
						"secret":                    cfg.ClientSecret,
						"redirectUris":              cfg.RedirectURIs,
						"protocol":                  "openid-connect",
						"publicClient":              false,
						"directAccessGrantsEnabled": true,
						"standardFlowEnabled":       true,
						"bearerOnly":                false,
						"consentRequired":           false,
						"frontchannelLogout":        true,
						"webOrigins":                []any{"*"},
					},
				},
			},
		},
	}

	if err := ApplyRawHashed(ctx, c, keycloakRealmImportGVK, keycloakNamespace, resourceName, realmHashAnnotation, hash, doc); err != nil {
		if isMissingKeycloakCRD(err) {
			return &DependencyMissingError{Component: "oidc", Requires: "Keycloak operator", Hint: keycloakInstallHint}
		}
		return err
	}
	return nil
}

// DeleteRealm removes the app's realm import and the ExternalName alias
// Service, leaving the shared Keycloak instance itself untouched.
func DeleteRealm(ctx context.Context, c client.Client, namespace string) error {
	if err := DeleteIfExists(ctx, c, serviceStub(namespace, keycloakServiceName)); err != nil {
		return err
	}
	u := &unstructured.Unstructured{}
	u.SetGroupVersionKind(keycloakRealmImportGVK)
	u.SetNamespace(keycloakNamespace)
	u.SetName(realmResourceName(namespace))
	return DeleteIfExists(ctx, c, u)
}

func realmHash(cfg RealmConfig) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%v|%t|%s", cfg.Namespace, cfg.ClientID, cfg.ClientSecret, cfg.RedirectURIs, cfg.AllowRegistration, cfg.PublicBaseURL)
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func isMissingKeycloakCRD(err error) bool {
	if apierrors.IsNotFound(err) {
		return true
	}
	return meta.IsNoMatchError(err)
}

// ensureKeycloakAlias creates the in-namespace ExternalName Service that lets
// nginx and oauth2-proxy reach the shared Keycloak deployment without
// hardcoding its namespace into every OIDC URL.
func ensureKeycloakAlias(ctx context.Context, c client.Client, namespace string) error {
	svc := &corev1.Service{
		ObjectMeta: metaObjectMeta(namespace, keycloakServiceName, nil),
		Spec: corev1.ServiceSpec{
			Type:         corev1.ServiceTypeExternalName,
			ExternalName: fmt.Sprintf("%s.%s.svc.cluster.local", keycloakServiceName, keycloakNamespace),
		},
	}
	svc.TypeMeta = metav1.TypeMeta{APIVersion: "v1", Kind: "Service"}
	return Apply(ctx, c, svc, FieldManager)
}

// DeployOAuth2Proxy ensures the oauth2-proxy deployment exists as a plain
// ServiceDeployment, wired to the app's realm client credentials and the
// in-namespace Keycloak alias. oauth2-proxy has no dedicated config CRD in
// this stack; it is configured entirely through environment variables.
// webPort is the user's own web service port, since oauth2-proxy sits in
// front of the reserved web_app Service rather than a fixed port.
func DeployOAuth2Proxy(ctx context.Context, c client.Client, namespace, stackName string, cfg RealmConfig, webPort int32) error {
	cookieSecretData, err := EnsureSecret(ctx, c, namespace, oauth2ProxyCookieSecret, AppLabels(stackName, oauth2ProxyName), func() (map[string][]byte, error) {
		secret, err := RandomToken(32)
		if err != nil {
			return nil, err
		}
		return map[string][]byte{"cookie-secret": []byte(secret)}, nil
	})
	if err != nil {
		return err
	}

	issuerURL := fmt.Sprintf("%s/realms/%s", keycloakInternalURL, namespace)
	upstream := fmt.Sprintf("http://%s:%d", webAppName, webPort)

	deployment := ServiceDeployment{
		Name:  oauth2ProxyName,
		Image: oauth2ProxyDefaultImage,
		Port:  ptrInt32(oauth2ProxyPort),
		Env: []corev1.EnvVar{
			{Name: "OAUTH2_PROXY_PROVIDER", Value: "keycloak-oidc"},
			{Name: "OAUTH2_PROXY_OIDC_ISSUER_URL", Value: issuerURL},
			{Name: "OAUTH2_PROXY_CLIENT_ID", Value: cfg.ClientID},
			{Name: "OAUTH2_PROXY_CLIENT_SECRET", Value: cfg.ClientSecret},
			{Name: "OAUTH2_PROXY_REDIRECT_URL", Value: cfg.PublicBaseURL + "/oauth2/callback"},
			{Name: "OAUTH2_PROXY_UPSTREAMS", Value: upstream},
			{Name: "OAUTH2_PROXY_HTTP_ADDRESS", Value: fmt.Sprintf("0.0.0.0:%d", oauth2ProxyPort)},
			{Name: "OAUTH2_PROXY_EMAIL_DOMAINS", Value: "*"},
			{Name: "OAUTH2_PROXY_SKIP_PROVIDER_BUTTON", Value: "true"},
			{Name: "OAUTH2_PROXY_COOKIE_SECURE", Value: "false"},
			{Name: "OAUTH2_PROXY_COOKIE_SECRET", Value: string(cookieSecretData["cookie-secret"])},
		},
	}
	return ApplyServiceDeployment(ctx, c, deployment, namespace, false)
}

// DeleteOAuth2Proxy tears down the oauth2-proxy deployment, its Service, and
// the realm import and alias Service it depended on.
func DeleteOAuth2Proxy(ctx context.Context, c client.Client, namespace string) error {
	if err := DeleteIfExists(ctx, c, deploymentStub(namespace, oauth2ProxyName)); err != nil {
		return err
	}
	if err := DeleteIfExists(ctx, c, serviceStub(namespace, oauth2ProxyName)); err != nil {
		return err
	}
	return DeleteIfExists(ctx, c, secretStub(namespace, oauth2ProxyCookieSecret))
}

// DeleteOIDC tears down every OIDC resource: oauth2-proxy, the realm, and the
// Keycloak alias Service.
func DeleteOIDC(ctx context.Context, c client.Client, namespace string) error {
	if err := DeleteOAuth2Proxy(ctx, c, namespace); err != nil {
		return err
	}
	if err := DeleteIfExists(ctx, c, secretStub(namespace, oidcClientSecretName)); err != nil {
		return err
	}
	return DeleteRealm(ctx, c, namespace)
}

// EnsureClientCredentials generates (once) and returns the OIDC client id
// and secret the realm's client and oauth2-proxy share, keyed off the
// StackApp's own name so the client id is stable and human-readable.
func EnsureClientCredentials(ctx context.Context, c client.Client, namespace, stackName string) (string, string, error) {
	data, err := EnsureSecret(ctx, c, namespace, oidcClientSecretName, AppLabels(stackName, oauth2ProxyName), func() (map[string][]byte, error) {
		secret, err := RandomToken(32)
		if err != nil {
			return nil, err
		}
		return map[string][]byte{"client-id": []byte(stackName), "client-secret": []byte(secret)}, nil
	})
	if err != nil {
		return "", "", err
	}
	return string(data["client-id"]), string(data["client-secret"]), nil
}
