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

	stackv1alpha1 "github.com/stack-cli/stack-operator/api/v1alpha1"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

const (
	mailhogName             = "mailhog"
	mailhogDefaultImage     = "mailhog/mailhog"
	mailhogDefaultSMTPPort = int32(1025)
	mailhogDefaultWebPort  = int32(8025)
)

// DeployMailhog ensures the Mailhog SMTP-sink deployment and its dual-port
// (smtp + web) Service exist. allow_from_anywhere is tied to whether either
// port is exposed via a NodePort, matching the original.
func DeployMailhog(ctx context.Context, c client.Client, namespace, stackName string, cfg *stackv1alpha1.MailhogConfig) error {
	image := mailhogDefaultImage
	smtpPort := mailhogDefaultSMTPPort
	webPort := mailhogDefaultWebPort
	allowFromAnywhere := false
	if cfg != nil {
		if cfg.Image != nil {
			image = *cfg.Image
		}
		if cfg.SMTPPort != nil {
			smtpPort = *cfg.SMTPPort
		}
		if cfg.WebPort != nil {
			webPort = *cfg.WebPort
		}
		allowFromAnywhere = cfg.ExposeSMTPPort != nil || cfg.ExposeWebPort != nil
	}

	deployment := ServiceDeployment{Name: mailhogName, Image: image}
	if err := Apply(ctx, c, BuildDeployment(deployment, namespace), FieldManager); err != nil {
		return err
	}

	smtp := &corev1.Service{
		ObjectMeta: metaObjectMeta(namespace, "smtp", AppLabels(stackName, mailhogName)),
		Spec: corev1.ServiceSpec{
			Selector: AppLabels(mailhogName, mailhogName),
			Ports:    []corev1.ServicePort{{Port: smtpPort, TargetPort: intOrString(smtpPort)}},
		},
	}
	web := &corev1.Service{
		ObjectMeta: metaObjectMeta(namespace, "web", AppLabels(stackName, mailhogName)),
		Spec: corev1.ServiceSpec{
			Selector: AppLabels(mailhogName, mailhogName),
			Ports:    []corev1.ServicePort{{Port: webPort, TargetPort: intOrString(webPort)}},
		},
	}
	if err := Apply(ctx, c, smtp, FieldManager); err != nil {
		return err
	}
	if err := Apply(ctx, c, web, FieldManager); err != nil {
		return err
	}
	return DefaultDeny(ctx, c, mailhogName, namespace, allowFromAnywhere)
}

// DeleteMailhog tears down the Mailhog deployment and both Services.
func DeleteMailhog(ctx context.Context, c client.Client, namespace string) error {
	if err := DeleteIfExists(ctx, c, deploymentStub(namespace, mailhogName)); err != nil {
		return err
	}
	if err := DeleteIfExists(ctx, c, serviceStub(namespace, "smtp")); err != nil {
		return err
	}
	return DeleteIfExists(ctx, c, serviceStub(namespace, "web"))
}
