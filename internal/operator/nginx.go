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
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

const (
	nginxName         = "nginx"
	nginxPort         = int32(80)
	nginxDefaultImage = "nginx:1.27.2"
)

// NginxMode selects which auth path the assembled config routes "/" through.
type NginxMode int

const (
	// NginxModeOIDC routes "/" through oauth2-proxy and exposes "/oidc/" for
	// the browser's Keycloak login flow.
	NginxModeOIDC NginxMode = iota
	// NginxModeStaticJWT routes "/" straight to the web service, injecting a
	// fixed bearer token on every request.
	NginxModeStaticJWT
)

// NginxSpec carries everything the config assembler needs to decide which
// location blocks to emit.
type NginxSpec struct {
	Mode                 NginxMode
	StaticJWT            string // required when Mode == NginxModeStaticJWT
	UpstreamPort         int32
	AppName              string
	IncludeAuth          bool
	IncludeStorage       bool
	IncludeRest          bool
	IncludeRealtime      bool
	IncludeDocumentEngine bool
	ExposeAdmin          bool // OIDC mode only: when false, /oidc/admin 404s
}

func proxyBlock(path, service string, port int32, protoVar, upstreamPath string) string {
	return fmt.Sprintf(`
    location = %[1]s {
        return 301 %[1]s/;
    }

    location ^~ %[1]s/ {
        proxy_pass http://%[2]s:%[3]d%[5]s;
        proxy_set_header Host $host;
        proxy_set_header X-Real-IP $remote_addr;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
        proxy_set_header X-Forwarded-Proto %[4]s;
        proxy_set_header X-Forwarded-Host $host;
        proxy_set_header Authorization $http_authorization;
        proxy_set_header X-Auth-JWT $http_x_auth_jwt;
    }
`, path, service, port, protoVar, upstreamPath)
}

func websocketBlock(path, service string, port int32, protoVar, upstreamPath string) string {
	return fmt.Sprintf(`
    location = %[1]s {
        return 301 %[1]s/;
    }

    location ^~ %[1]s/ {
        proxy_http_version 1.1;
        proxy_set_header Upgrade $http_upgrade;
        proxy_set_header Connection "upgrade";
        proxy_set_header Sec-WebSocket-Protocol $http_sec_websocket_protocol;
        proxy_pass_header Sec-WebSocket-Protocol;
        add_header Sec-WebSocket-Protocol $http_sec_websocket_protocol always;
        proxy_pass http://%[2]s:%[3]d%[5]s;
        proxy_set_header Host $host;
        proxy_set_header X-Real-IP $remote_addr;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
        proxy_set_header X-Forwarded-Proto %[4]s;
        proxy_set_header X-Forwarded-Host $host;
        proxy_set_header Authorization $http_authorization;
        proxy_set_header X-Auth-JWT $http_x_auth_jwt;
    }
`, path, service, port, protoVar, upstreamPath)
}

func authProxyBlock(protoVar string) string {
	return fmt.Sprintf(`
    location = /auth {
        return 301 /auth/v1/;
    }

    location = /auth/ {
        return 301 /auth/v1/;
    }

    location ^~ /auth/v1/ {
        if ($request_method = OPTIONS) {
            add_header Access-Control-Allow-Origin $http_origin always;
            add_header Access-Control-Allow-Credentials "true" always;
            add_header Access-Control-Allow-Methods "GET, POST, PUT, PATCH, DELETE, OPTIONS" always;
            add_header Access-Control-Allow-Headers "authorization, apikey, content-type, x-client-info, x-auth-jwt, x-supabase-api-version, x-supabase-client" always;
            add_header Access-Control-Max-Age 86400 always;
            add_header Vary Origin always;
            return 204;
        }

        proxy_pass http://auth:9999/;
        proxy_set_header Host $host;
        proxy_set_header X-Real-IP $remote_addr;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
        proxy_set_header X-Forwarded-Proto %s;
        proxy_set_header X-Forwarded-Host $host;
        proxy_set_header Authorization $http_authorization;
        proxy_set_header X-Auth-JWT $http_x_auth_jwt;
    }
`, protoVar)
}

func storageProxyBlock(protoVar string) string {
	return fmt.Sprintf(`
    location = /storage/v1 {
        return 301 /storage/v1/;
    }

    location ^~ /storage/v1/ {
        if ($request_method = OPTIONS) {
            add_header Access-Control-Allow-Origin $http_origin always;
            add_header Access-Control-Allow-Credentials "true" always;
            add_header Access-Control-Allow-Methods "GET, POST, PUT, PATCH, DELETE, OPTIONS" always;
            add_header Access-Control-Allow-Headers "authorization, apikey, content-type, x-client-info, x-upsert, x-auth-jwt, x-supabase-api-version, x-supabase-client" always;
            add_header Access-Control-Max-Age 86400 always;
            add_header Vary Origin always;
            return 204;
        }

        proxy_pass http://storage:5000/;
        proxy_set_header Host $host;
        proxy_set_header X-Real-IP $remote_addr;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
        proxy_set_header X-Forwarded-Proto %s;
        proxy_set_header X-Forwarded-Host $host;
        proxy_set_header Authorization $http_authorization;
        proxy_set_header X-Auth-JWT $http_x_auth_jwt;
    }
`, protoVar)
}

// oidcAdminBlock 404s /oidc/admin when the realm admin console is not meant
// to be reachable through the public ingress. Placed as a ^~ prefix match
// one segment longer than /oidc/, so nginx's longest-prefix rule picks it
// over the general proxy block regardless of declaration order.
func oidcAdminBlock() string {
	return `
    location ^~ /oidc/admin {
        return 404;
    }
`
}

func realtimeBlock(protoVar string) string {
	ws := websocketBlock("/realtime/v1", "realtime", 4000, protoVar, "/socket/")
	rest := proxyBlock("/realtime/v1/api", "realtime", 4000, protoVar, "/api/")
	combined := ws + "\n" + rest
	combined = strings.ReplaceAll(combined, "proxy_set_header Host $host;", "proxy_set_header Host realtime-dev;")
	combined = strings.ReplaceAll(combined, "proxy_set_header X-Forwarded-Host $host;", "proxy_set_header X-Forwarded-Host realtime-dev;")
	return combined
}

// buildNginxConfig assembles the default.conf body for spec by concatenating
// the enabled location-block fragments in a fixed order. Never templated:
// every component either contributes its whole block or an empty string.
func buildNginxConfig(spec NginxSpec) string {
	var protoVar string
	if spec.Mode == NginxModeOIDC {
		protoVar = "$forwarded_proto"
	} else {
		protoVar = "$scheme"
	}

	storageBlock := ""
	if spec.IncludeStorage {
		storageBlock = storageProxyBlock(protoVar)
	}
	restBlock := ""
	if spec.IncludeRest {
		restBlock = proxyBlock("/rest/v1", "rest", 3000, protoVar, "/")
	}
	realtime := ""
	if spec.IncludeRealtime {
		realtime = realtimeBlock(protoVar)
	}
	documentEngine := ""
	if spec.IncludeDocumentEngine {
		documentEngine = proxyBlock("/document-engine", "document-engine", 8000, protoVar, "/")
	}
	authBlock := ""
	if spec.IncludeAuth {
		authBlock = authProxyBlock(protoVar)
	}

	if spec.Mode == NginxModeOIDC {
		adminBlock := ""
		if !spec.ExposeAdmin {
			adminBlock = oidcAdminBlock()
		}
		return fmt.Sprintf(`
server {
    listen 80;

    proxy_buffer_size   128k;
    proxy_buffers       4 256k;
    proxy_busy_buffers_size 256k;
    set $forwarded_proto $scheme;
    if ($http_x_forwarded_proto != "") {
        set $forwarded_proto $http_x_forwarded_proto;
    }
%s
    location = /oidc {
        return 301 /oidc/;
    }

    location ^~ /oidc/ {
        proxy_pass http://keycloak-service:8080/;
        proxy_set_header Host $host;
        proxy_set_header X-Real-IP $remote_addr;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
        proxy_set_header X-Forwarded-Proto $forwarded_proto;
        proxy_set_header X-Forwarded-Host $host;
        proxy_set_header X-Forwarded-Prefix /oidc;
        proxy_redirect ~^http://keycloak-service\.keycloak\.svc\.cluster\.local:8080/(.*)$ $scheme://$host/oidc/$1;
    }

%s
%s
%s
%s
%s

    location / {
        proxy_pass http://oauth2-proxy:7900;
        proxy_set_header Host $host;
        proxy_set_header X-Real-IP $remote_addr;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
        proxy_set_header X-Forwarded-Proto $scheme;
        proxy_set_header X-Forwarded-Host $host;
        proxy_redirect ~^http://keycloak-service\.keycloak\.svc\.cluster\.local:8080/(.*)$ $scheme://$host/$1;
    }
}
`, adminBlock, storageBlock, authBlock, restBlock, realtime, documentEngine)
	}

	escapedToken := strings.ReplaceAll(spec.StaticJWT, `"`, `\"`)
	return fmt.Sprintf(`
server {
    listen 80;

    proxy_buffer_size   128k;
    proxy_buffers       4 256k;
    proxy_busy_buffers_size 256k;

%s
%s
%s
%s
%s

    location / {
        proxy_pass http://%s:%d;
        proxy_set_header Host $host;
        proxy_set_header X-Real-IP $remote_addr;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
        proxy_set_header X-Forwarded-Proto $scheme;
        proxy_set_header X-Forwarded-Host $host;
        proxy_set_header Authorization "Bearer %s";
        proxy_set_header X-Auth-JWT "%s";
    }
}
`, storageBlock, authBlock, restBlock, realtime, documentEngine, spec.AppName, spec.UpstreamPort, escapedToken, escapedToken)
}

// DeployNginx renders the config into the nginx ConfigMap and ensures the
// reverse-proxy Deployment mounting it. allow_from_anywhere is always true
// for nginx: it is the one component meant to be reachable from outside the
// namespace's default-deny boundary.
func DeployNginx(ctx context.Context, c client.Client, namespace string, spec NginxSpec) error {
	configBody := buildNginxConfig(spec)
	configMap := &corev1.ConfigMap{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "ConfigMap"},
		ObjectMeta: metaObjectMeta(namespace, nginxName, nil),
		Data:       map[string]string{"default.conf": configBody},
	}
	if err := Apply(ctx, c, configMap, FieldManager); err != nil {
		return err
	}

	deployment := ServiceDeployment{
		Name:  nginxName,
		Image: nginxDefaultImage,
		Port:  ptrInt32(nginxPort),
		VolumeMounts: []corev1.VolumeMount{
			{Name: nginxName, MountPath: "/etc/nginx/conf.d"},
		},
		Volumes: []corev1.Volume{{
			Name: nginxName,
			VolumeSource: corev1.VolumeSource{
				ConfigMap: &corev1.ConfigMapVolumeSource{
					LocalObjectReference: corev1.LocalObjectReference{Name: nginxName},
				},
			},
		}},
	}
	return ApplyServiceDeployment(ctx, c, deployment, namespace, true)
}

// DeleteNginx tears down the nginx deployment, its Service, and the
// default.conf ConfigMap.
func DeleteNginx(ctx context.Context, c client.Client, namespace string) error {
	if err := DeleteIfExists(ctx, c, deploymentStub(namespace, nginxName)); err != nil {
		return err
	}
	if err := DeleteIfExists(ctx, c, serviceStub(namespace, nginxName)); err != nil {
		return err
	}
	cm := &corev1.ConfigMap{ObjectMeta: metaObjectMeta(namespace, nginxName, nil)}
	return DeleteIfExists(ctx, c, cm)
}
