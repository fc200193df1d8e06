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
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/yaml"
)

const (
	cloudflaredName = "cloudflared"

	// SecretTokenKey, SecretTunnelNameKey and SecretIngressTargetKey are the
	// fields deploy reads from the user-supplied Cloudflare secret.
	SecretTokenKey          = "token"
	SecretTunnelNameKey     = "tunnel_name"
	SecretIngressTargetKey  = "ingress_target"
)

const cloudflareQuickYAML = `---
apiVersion: apps/v1
kind: Deployment
metadata:
  name: cloudflared
spec:
  selector:
    matchLabels:
      app: cloudflared
  replicas: 1
  template:
    metadata:
      labels:
        app: cloudflared
    spec:
      containers:
      - name: cloudflared
        image: cloudflare/cloudflared:latest
        args:
        - tunnel
        - --no-autoupdate
        - --protocol
        - http2
        - --url
        - $TARGET_URL
`

const cloudflareConfigYAML = `---
apiVersion: apps/v1
kind: Deployment
metadata:
  name: cloudflared
spec:
  selector:
    matchLabels:
      app: cloudflared
  replicas: 1
  template:
    metadata:
      labels:
        app: cloudflared
    spec:
      containers:
      - name: cloudflared
        image: cloudflare/cloudflared:latest
        env:
        - name: TUNNEL_TOKEN
          valueFrom:
            secretKeyRef:
              name: $SECRET_NAME
              key: token
        args:
        - tunnel
        - --config
        - /etc/cloudflared/config/config.yaml
        - run
        volumeMounts:
        - name: config
          mountPath: /etc/cloudflared/config
          readOnly: true
      volumes:
      - name: config
        configMap:
          name: cloudflared
          items:
          - key: config.yaml
            path: config.yaml
---
apiVersion: v1
kind: ConfigMap
metadata:
  name: cloudflared
data:
  config.yaml: |
    tunnel: $TUNNEL_NAME
    ingress:
    - hostname: "*"
      service: $INGRESS_TARGET
`

const cloudflareConfigNoTunnelYAML = `---
apiVersion: apps/v1
kind: Deployment
metadata:
  name: cloudflared
spec:
  selector:
    matchLabels:
      app: cloudflared
  replicas: 1
  template:
    metadata:
      labels:
        app: cloudflared
    spec:
      containers:
      - name: cloudflared
        image: cloudflare/cloudflared:latest
        env:
        - name: TUNNEL_TOKEN
          valueFrom:
            secretKeyRef:
              name: $SECRET_NAME
              key: token
        args:
        - tunnel
        - --config
        - /etc/cloudflared/config/config.yaml
        - run
        volumeMounts:
        - name: config
          mountPath: /etc/cloudflared/config
          readOnly: true
      volumes:
      - name: config
        configMap:
          name: cloudflared
          items:
          - key: config.yaml
            path: config.yaml
---
apiVersion: v1
kind: ConfigMap
metadata:
  name: cloudflared
data:
  config.yaml: |
    ingress:
    - hostname: "*"
      service: $INGRESS_TARGET
`

// DeployCloudflare applies the cloudflared tunnel Deployment (and, in
// token mode, its config ConfigMap). With secretName nil this is a quick
// tunnel pointed at nginx directly; with secretName set it reads
// token/tunnel_name/ingress_target from that secret and selects the
// named-tunnel or no-tunnel-name config template accordingly.
func DeployCloudflare(ctx context.Context, c client.Client, namespace string, secretName *string) error {
	nginxTarget := fmt.Sprintf("http://%s.%s.svc.cluster.local:%d", nginxName, namespace, nginxPort)

	if secretName == nil {
		doc := strings.ReplaceAll(cloudflareQuickYAML, "$TARGET_URL", nginxTarget)
		return applyYAMLDocuments(ctx, c, namespace, doc)
	}

	secret, found, err := GetSecret(ctx, c, namespace, *secretName)
	if err != nil {
		return err
	}
	if !found {
		return &CredentialMissingError{Secret: *secretName, Key: SecretTokenKey}
	}
	if _, ok := ReadSecretField(secret, SecretTokenKey); !ok {
		return &CredentialMissingError{Secret: *secretName, Key: SecretTokenKey}
	}
	ingressTarget, ok := ReadSecretField(secret, SecretIngressTargetKey)
	if !ok {
		ingressTarget = nginxTarget
	}

	var doc string
	if tunnelName, ok := ReadSecretField(secret, SecretTunnelNameKey); ok {
		doc = strings.NewReplacer(
			"$SECRET_NAME", *secretName,
			"$TUNNEL_NAME", tunnelName,
			"$INGRESS_TARGET", ingressTarget,
		).Replace(cloudflareConfigYAML)
	} else {
		doc = strings.NewReplacer(
			"$SECRET_NAME", *secretName,
			"$INGRESS_TARGET", ingressTarget,
		).Replace(cloudflareConfigNoTunnelYAML)
	}
	return applyYAMLDocuments(ctx, c, namespace, doc)
}

// applyYAMLDocuments server-side-applies every "---"-separated YAML
// document in raw, setting namespace on each.
func applyYAMLDocuments(ctx context.Context, c client.Client, namespace, raw string) error {
	for _, part := range strings.Split(raw, "---") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var doc map[string]any
		if err := yaml.Unmarshal([]byte(part), &doc); err != nil {
			return &InternalError{Op: "cloudflare.unmarshal", Err: err}
		}
		u := &unstructured.Unstructured{Object: doc}
		u.SetNamespace(namespace)
		u.SetManagedFields(nil)
		if err := c.Patch(ctx, u, client.Apply, client.FieldOwner(FieldManager), client.ForceOwnership); err != nil {
			return &KubeAPIError{Op: "apply " + u.GetKind() + "/" + u.GetName(), Err: err}
		}
	}
	return nil
}

// DeleteCloudflare tears down the cloudflared Deployment and, if present,
// its config ConfigMap.
func DeleteCloudflare(ctx context.Context, c client.Client, namespace string) error {
	if err := DeleteIfExists(ctx, c, deploymentStub(namespace, cloudflaredName)); err != nil {
		return err
	}
	cm := &corev1.ConfigMap{ObjectMeta: metaObjectMeta(namespace, cloudflaredName, nil)}
	return DeleteIfExists(ctx, c, cm)
}
