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
	"time"

	"github.com/golang-jwt/jwt/v5"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

const (
	jwtSecretName  = "jwt-auth"
	jwtSecretKey   = "jwt-secret"
	jwtAnonKey     = "anon-jwt"
	jwtServiceKey  = "service-role-jwt"
	jwtTokenTTL    = 10 * 365 * 24 * time.Hour
	jwtIssuer      = "stack"
)

// StackClaims are the custom JWT claims minted for the anon and
// service_role tokens, preserving the original's {role, iss, exp} shape on
// top of the library's registered-claims validation machinery.
type StackClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// EnsureJWTSecret ensures the jwt-auth secret exists with a signing secret
// and long-lived anon/service_role tokens, generating them once and
// preserving them across reconciles.
func EnsureJWTSecret(ctx context.Context, c client.Client, namespace, stackName string) (map[string][]byte, error) {
	return EnsureSecret(ctx, c, namespace, jwtSecretName, AppLabels(stackName, "jwt"), func() (map[string][]byte, error) {
		signingSecret, err := RandomToken(32)
		if err != nil {
			return nil, err
		}
		anon, err := mintToken(signingSecret, "anon")
		if err != nil {
			return nil, err
		}
		service, err := mintToken(signingSecret, "service_role")
		if err != nil {
			return nil, err
		}
		return map[string][]byte{
			jwtSecretKey:  []byte(signingSecret),
			jwtAnonKey:    []byte(anon),
			jwtServiceKey: []byte(service),
		}, nil
	})
}

// AnonToken reads the anon JWT out of the jwt-auth secret's data, as
// returned by EnsureJWTSecret.
func AnonToken(data map[string][]byte) string {
	return string(data[jwtAnonKey])
}

func mintToken(signingSecret, role string) (string, error) {
	now := time.Now()
	claims := StackClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtTokenTTL)),
		},
		Role: role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(signingSecret))
}
