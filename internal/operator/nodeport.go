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

	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// NodePortName is the fixed suffix every optional exposure's Service
// carries, so the controller's repeated reconciles always address the
// same object regardless of which port number the caller requested.
func nodePortServiceName(component string) string {
	return component + "-development"
}

// NodePortSpec describes one NodePort port to open on component's Service.
type NodePortSpec struct {
	Name       string
	Port       int32
	TargetPort int32
	NodePort   int32
}

// ApplyNodePort applies (or re-applies) a NodePort Service named
// "<component>-development" selecting selector, exposing ports. Called once
// per enabled exposure; idempotent under repeated reconciles because the
// NodePort values are carried in spec, not allocated by the API server.
func ApplyNodePort(ctx context.Context, c client.Client, namespace, component string, selector map[string]string, ports []NodePortSpec) error {
	var svcPorts []corev1.ServicePort
	for _, p := range ports {
		svcPorts = append(svcPorts, corev1.ServicePort{
			Name:       p.Name,
			Port:       p.Port,
			TargetPort: intOrString(p.TargetPort),
			NodePort:   p.NodePort,
		})
	}
	svc := &corev1.Service{
		ObjectMeta: metaObjectMeta(namespace, nodePortServiceName(component), AppLabels(component, component)),
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceTypeNodePort,
			Selector: selector,
			Ports:    svcPorts,
		},
	}
	return Apply(ctx, c, svc, FieldManager)
}

// DeleteNodePort removes the NodePort Service for component if present.
func DeleteNodePort(ctx context.Context, c client.Client, namespace, component string) error {
	return DeleteIfExists(ctx, c, serviceStub(namespace, nodePortServiceName(component)))
}

// cnpgPrimarySelector is the label selector CNPG applies to the primary
// instance's pod, used by the db NodePort exposure (spec §4.8).
func cnpgPrimarySelector(stackName string) map[string]string {
	return map[string]string{
		"cnpg.io/cluster": ClusterName(stackName),
		"role":            "primary",
	}
}

// ReconcileNodePorts applies or deletes every optional NodePort exposure
// (db, ingress, rest, selenium, mailhog) based on which components request
// one. Each exposure is independent: toggling one component's node port
// does not touch the others.
func ReconcileNodePorts(ctx context.Context, c client.Client, namespace, stackName string, components stackComponents) error {
	if err := reconcileDBNodePort(ctx, c, namespace, stackName, components.dbExposePort); err != nil {
		return err
	}
	if err := reconcileSingleNodePort(ctx, c, namespace, nginxName, components.ingressPort); err != nil {
		return err
	}
	if err := reconcileSingleNodePort(ctx, c, namespace, restName, components.restExposePort); err != nil {
		return err
	}
	if err := reconcileSeleniumNodePort(ctx, c, namespace, components.seleniumWebdriverPort, components.seleniumVNCPort); err != nil {
		return err
	}
	return reconcileMailhogNodePort(ctx, c, namespace, components.mailhogSMTPPort, components.mailhogWebPort)
}

func reconcileDBNodePort(ctx context.Context, c client.Client, namespace, stackName string, exposePort *int32) error {
	if exposePort == nil {
		return DeleteNodePort(ctx, c, namespace, "db")
	}
	return ApplyNodePort(ctx, c, namespace, "db", cnpgPrimarySelector(stackName), []NodePortSpec{
		{Name: "postgres", Port: 5432, TargetPort: 5432, NodePort: *exposePort},
	})
}

func reconcileSingleNodePort(ctx context.Context, c client.Client, namespace, component string, exposePort *int32) error {
	if exposePort == nil {
		return DeleteNodePort(ctx, c, namespace, component)
	}
	var port int32
	switch component {
	case nginxName:
		port = nginxPort
	case restName:
		port = restDefaultPort
	}
	return ApplyNodePort(ctx, c, namespace, component, AppLabels(component, component), []NodePortSpec{
		{Name: component, Port: port, TargetPort: port, NodePort: *exposePort},
	})
}

func reconcileSeleniumNodePort(ctx context.Context, c client.Client, namespace string, webdriverPort, vncPort *int32) error {
	if webdriverPort == nil && vncPort == nil {
		return DeleteNodePort(ctx, c, namespace, seleniumName)
	}
	var ports []NodePortSpec
	if webdriverPort != nil {
		ports = append(ports, NodePortSpec{Name: "webdriver", Port: seleniumDefaultPort, TargetPort: seleniumDefaultPort, NodePort: *webdriverPort})
	}
	if vncPort != nil {
		ports = append(ports, NodePortSpec{Name: "vnc", Port: seleniumDefaultVNCPort, TargetPort: seleniumDefaultVNCPort, NodePort: *vncPort})
	}
	return ApplyNodePort(ctx, c, namespace, seleniumName, AppLabels(seleniumName, seleniumName), ports)
}

func reconcileMailhogNodePort(ctx context.Context, c client.Client, namespace string, smtpPort, webPort *int32) error {
	if smtpPort == nil && webPort == nil {
		return DeleteNodePort(ctx, c, namespace, mailhogName)
	}
	var ports []NodePortSpec
	if smtpPort != nil {
		ports = append(ports, NodePortSpec{Name: "smtp", Port: mailhogDefaultSMTPPort, TargetPort: mailhogDefaultSMTPPort, NodePort: *smtpPort})
	}
	if webPort != nil {
		ports = append(ports, NodePortSpec{Name: "web", Port: mailhogDefaultWebPort, TargetPort: mailhogDefaultWebPort, NodePort: *webPort})
	}
	return ApplyNodePort(ctx, c, namespace, mailhogName, AppLabels(mailhogName, mailhogName), ports)
}

// stackComponents carries the subset of a StackApp's components relevant to
// NodePort exposure, decoupling this file from the CRD package so the
// controller is the only caller that needs to know both shapes.
type stackComponents struct {
	dbExposePort          *int32
	ingressPort           *int32
	restExposePort        *int32
	seleniumWebdriverPort *int32
	seleniumVNCPort       *int32
	mailhogSMTPPort       *int32
	mailhogWebPort        *int32
}

// NewNodePortSelection builds a stackComponents value from the raw
// exposure pointers the controller reads off the StackApp spec.
func NewNodePortSelection(dbExposePort, ingressPort, restExposePort, seleniumWebdriverPort, seleniumVNCPort, mailhogSMTPPort, mailhogWebPort *int32) stackComponents {
	return stackComponents{
		dbExposePort:          dbExposePort,
		ingressPort:           ingressPort,
		restExposePort:        restExposePort,
		seleniumWebdriverPort: seleniumWebdriverPort,
		seleniumVNCPort:       seleniumVNCPort,
		mailhogSMTPPort:       mailhogSMTPPort,
		mailhogWebPort:        mailhogWebPort,
	}
}
