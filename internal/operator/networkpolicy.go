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

	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// DefaultDeny applies a NetworkPolicy that isolates name's pods, opening
// ingress only from pods in the same namespace unless allowFromAnywhere is
// set, in which case all ingress is allowed (used by components exposed via
// a NodePort, where the source is outside the cluster's pod network).
func DefaultDeny(ctx context.Context, c client.Client, name, namespace string, allowFromAnywhere bool) error {
	selector := metav1.LabelSelector{MatchLabels: map[string]string{"component": name}}

	var ingress []networkingv1.NetworkPolicyIngressRule
	if allowFromAnywhere {
		ingress = []networkingv1.NetworkPolicyIngressRule{{}}
	} else {
		ingress = []networkingv1.NetworkPolicyIngressRule{{
			From: []networkingv1.NetworkPolicyPeer{{
				NamespaceSelector: &metav1.LabelSelector{},
			}},
		}}
	}

	policy := &networkingv1.NetworkPolicy{
		ObjectMeta: metaObjectMeta(namespace, name+"-default-deny", AppLabels(name, name)),
		Spec: networkingv1.NetworkPolicySpec{
			PodSelector: selector,
			PolicyTypes: []networkingv1.PolicyType{networkingv1.PolicyTypeIngress},
			Ingress:     ingress,
		},
	}
	return Apply(ctx, c, policy, FieldManager)
}
