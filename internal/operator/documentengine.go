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

	"sigs.k8s.io/controller-runtime/pkg/client"
)

const (
	documentEngineName         = "document-engine"
	documentEngineDefaultImage = "ghcr.io/kreuzberg-dev/kreuzberg:4.1.0"
	documentEngineDefaultPort  = int32(8000)
)

// DeployDocumentEngine ensures the stateless document-extraction deployment
// exists. It carries no configurable fields today; presence of
// components.documentEngine in the spec is the only input.
func DeployDocumentEngine(ctx context.Context, c client.Client, namespace string) error {
	deployment := ServiceDeployment{
		Name:  documentEngineName,
		Image: documentEngineDefaultImage,
		Port:  ptrInt32(documentEngineDefaultPort),
	}
	return ApplyServiceDeployment(ctx, c, deployment, namespace, false)
}

// DeleteDocumentEngine tears down the document-engine deployment and its
// owned Service.
func DeleteDocumentEngine(ctx context.Context, c client.Client, namespace string) error {
	if err := DeleteIfExists(ctx, c, deploymentStub(namespace, documentEngineName)); err != nil {
		return err
	}
	return DeleteIfExists(ctx, c, serviceStub(namespace, documentEngineName))
}
