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
	"crypto/rand"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RandomToken returns a cryptographically random alphanumeric string of the
// given length, suitable for generated passwords and signing keys.
func RandomToken(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", &InternalError{Op: "random-token", Err: err}
	}
	out := make([]byte, length)
	for i, b := range buf {
		out[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(out), nil
}

// ReadSecretField reads key from secret, checking the already-decoded Data
// map first and falling back to StringData. client-go's typed Secret
// already base64-decodes Data into plain bytes, so no further decoding is
// needed here.
func ReadSecretField(secret *corev1.Secret, key string) (string, bool) {
	if v, ok := secret.Data[key]; ok {
		return string(v), true
	}
	if v, ok := secret.StringData[key]; ok {
		return v, true
	}
	return "", false
}

// GetSecret fetches a secret by name, returning (nil, false, nil) if it
// does not exist rather than an error, so callers can branch on presence.
func GetSecret(ctx context.Context, c client.Client, namespace, name string) (*corev1.Secret, bool, error) {
	secret := &corev1.Secret{}
	err := c.Get(ctx, client.ObjectKey{Namespace: namespace, Name: name}, secret)
	switch {
	case apierrors.IsNotFound(err):
		return nil, false, nil
	case err != nil:
		return nil, false, &KubeAPIError{Op: "get secret " + name, Err: err}
	}
	return secret, true, nil
}

// EnsureSecret applies a secret with data produced by fill only if it does
// not already exist (fill runs once, letting callers seed a fresh random
// token the first time while never overwriting an existing one on later
// reconciles). It returns the resulting secret's data.
func EnsureSecret(ctx context.Context, c client.Client, namespace, name string, labels map[string]string, fill func() (map[string][]byte, error)) (map[string][]byte, error) {
	existing, found, err := GetSecret(ctx, c, namespace, name)
	if err != nil {
		return nil, err
	}
	if found {
		return existing.Data, nil
	}
	data, err := fill()
	if err != nil {
		return nil, err
	}
	secret := &corev1.Secret{
		ObjectMeta: metaObjectMeta(namespace, name, labels),
		Type:       corev1.SecretTypeOpaque,
		Data:       data,
	}
	if err := Apply(ctx, c, secret, FieldManager); err != nil {
		return nil, err
	}
	return data, nil
}
