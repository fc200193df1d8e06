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

package controller

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	stackv1alpha1 "github.com/stack-cli/stack-operator/api/v1alpha1"
)

func newMinimalStackApp(name string) *stackv1alpha1.StackApp {
	return &stackv1alpha1.StackApp{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: "default"},
		Spec: stackv1alpha1.StackAppSpec{
			Services: stackv1alpha1.Services{
				Web: stackv1alpha1.ServiceSpec{
					Image: "myapp/web:latest",
					Port:  8080,
				},
			},
		},
	}
}

var _ = Describe("needsNginx", func() {
	It("is false when no component is enabled", func() {
		Expect(needsNginx(stackv1alpha1.Components{})).To(BeFalse())
	})

	It("is true when Auth is enabled", func() {
		Expect(needsNginx(stackv1alpha1.Components{
			Auth: &stackv1alpha1.SupabaseAuthConfig{},
		})).To(BeTrue())
	})

	It("is true when OIDC is enabled", func() {
		Expect(needsNginx(stackv1alpha1.Components{
			OIDC: &stackv1alpha1.OidcConfig{},
		})).To(BeTrue())
	})

	It("is false when only DB is enabled", func() {
		Expect(needsNginx(stackv1alpha1.Components{
			DB: &stackv1alpha1.DbConfig{},
		})).To(BeFalse())
	})
})

var _ = Describe("StackAppReconciler", func() {
	var (
		ctx        context.Context
		fakeClient client.Client
		reconciler *StackAppReconciler
	)

	BeforeEach(func() {
		ctx = context.Background()
		fakeClient = newFakeClient()
		reconciler = &StackAppReconciler{Client: fakeClient, Scheme: newScheme()}
	})

	Context("minimal seed scenario (no components enabled)", func() {
		var app *stackv1alpha1.StackApp

		BeforeEach(func() {
			app = newMinimalStackApp("seed")
			Expect(fakeClient.Create(ctx, app)).To(Succeed())

			_, err := reconciler.Reconcile(ctx, ctrl.Request{NamespacedName: types.NamespacedName{Name: "seed", Namespace: "default"}})
			Expect(err).NotTo(HaveOccurred())
		})

		It("creates the web_app Deployment, not one named after the StackApp", func() {
			deploy := &appsv1.Deployment{}
			Expect(fakeClient.Get(ctx, types.NamespacedName{Name: "web_app", Namespace: "default"}, deploy)).To(Succeed())
			Expect(deploy.Spec.Template.Spec.Containers[0].Image).To(Equal("myapp/web:latest"))

			Expect(fakeClient.Get(ctx, types.NamespacedName{Name: "seed", Namespace: "default"}, &appsv1.Deployment{})).
				To(MatchError(apierrors.IsNotFound, "IsNotFound"))
		})

		It("deploys no nginx", func() {
			err := fakeClient.Get(ctx, types.NamespacedName{Name: "nginx", Namespace: "default"}, &appsv1.Deployment{})
			Expect(apierrors.IsNotFound(err)).To(BeTrue())
		})

		It("still mints the jwt-auth secret unconditionally", func() {
			secret := &corev1.Secret{}
			Expect(fakeClient.Get(ctx, types.NamespacedName{Name: "jwt-auth", Namespace: "default"}, secret)).To(Succeed())
			Expect(secret.Data).To(HaveKey("anon-jwt"))
		})

		It("adds the finalizer", func() {
			got := &stackv1alpha1.StackApp{}
			Expect(fakeClient.Get(ctx, types.NamespacedName{Name: "seed", Namespace: "default"}, got)).To(Succeed())
			Expect(got.Finalizers).To(ContainElement(stackAppFinalizer))
		})
	})

	Context("when auth is enabled", func() {
		BeforeEach(func() {
			app := newMinimalStackApp("with-auth")
			app.Spec.Components.Auth = &stackv1alpha1.SupabaseAuthConfig{
				APIExternalURL: "http://auth.local",
				SiteURL:        "http://app.local",
			}
			Expect(fakeClient.Create(ctx, app)).To(Succeed())

			_, err := reconciler.Reconcile(ctx, ctrl.Request{NamespacedName: types.NamespacedName{Name: "with-auth", Namespace: "default"}})
			Expect(err).NotTo(HaveOccurred())
		})

		It("deploys nginx in static-JWT mode", func() {
			deploy := &appsv1.Deployment{}
			Expect(fakeClient.Get(ctx, types.NamespacedName{Name: "nginx", Namespace: "default"}, deploy)).To(Succeed())
		})

		It("deploys the auth Deployment", func() {
			Expect(fakeClient.Get(ctx, types.NamespacedName{Name: "auth", Namespace: "default"}, &appsv1.Deployment{})).To(Succeed())
		})
	})

	Context("idempotence", func() {
		It("reconciling twice does not change the minted jwt secret", func() {
			app := newMinimalStackApp("idempotent")
			Expect(fakeClient.Create(ctx, app)).To(Succeed())
			req := ctrl.Request{NamespacedName: types.NamespacedName{Name: "idempotent", Namespace: "default"}}

			_, err := reconciler.Reconcile(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			first := &corev1.Secret{}
			Expect(fakeClient.Get(ctx, types.NamespacedName{Name: "jwt-auth", Namespace: "default"}, first)).To(Succeed())

			_, err = reconciler.Reconcile(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			second := &corev1.Secret{}
			Expect(fakeClient.Get(ctx, types.NamespacedName{Name: "jwt-auth", Namespace: "default"}, second)).To(Succeed())

			Expect(second.Data["jwt-secret"]).To(Equal(first.Data["jwt-secret"]))
			Expect(second.Data["anon-jwt"]).To(Equal(first.Data["anon-jwt"]))
		})
	})

	Context("component toggling", func() {
		It("tears down auth when it is disabled on a later reconcile", func() {
			app := newMinimalStackApp("toggle")
			app.Spec.Components.Auth = &stackv1alpha1.SupabaseAuthConfig{
				APIExternalURL: "http://auth.local",
				SiteURL:        "http://app.local",
			}
			Expect(fakeClient.Create(ctx, app)).To(Succeed())
			req := ctrl.Request{NamespacedName: types.NamespacedName{Name: "toggle", Namespace: "default"}}

			_, err := reconciler.Reconcile(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(fakeClient.Get(ctx, types.NamespacedName{Name: "auth", Namespace: "default"}, &appsv1.Deployment{})).To(Succeed())

			got := &stackv1alpha1.StackApp{}
			Expect(fakeClient.Get(ctx, types.NamespacedName{Name: "toggle", Namespace: "default"}, got)).To(Succeed())
			got.Spec.Components.Auth = nil
			Expect(fakeClient.Update(ctx, got)).To(Succeed())

			_, err = reconciler.Reconcile(ctx, req)
			Expect(err).NotTo(HaveOccurred())

			err = fakeClient.Get(ctx, types.NamespacedName{Name: "auth", Namespace: "default"}, &appsv1.Deployment{})
			Expect(apierrors.IsNotFound(err)).To(BeTrue())
		})
	})

	Context("teardown on deletion", func() {
		It("removes the web_app Deployment and the finalizer", func() {
			app := newMinimalStackApp("deleting")
			app.Finalizers = []string{stackAppFinalizer}
			Expect(fakeClient.Create(ctx, app)).To(Succeed())

			req := ctrl.Request{NamespacedName: types.NamespacedName{Name: "deleting", Namespace: "default"}}
			// The finalizer keeps the fake client's tracker from actually
			// removing the object; it only stamps DeletionTimestamp, exactly
			// as a real apiserver would.
			Expect(fakeClient.Delete(ctx, app)).To(Succeed())
			_, err := reconciler.Reconcile(ctx, req)
			Expect(err).NotTo(HaveOccurred())

			err = fakeClient.Get(ctx, types.NamespacedName{Name: "web_app", Namespace: "default"}, &appsv1.Deployment{})
			Expect(apierrors.IsNotFound(err)).To(BeTrue())

			err = fakeClient.Get(ctx, req.NamespacedName, &stackv1alpha1.StackApp{})
			Expect(apierrors.IsNotFound(err)).To(BeTrue())
		})
	})

	_ = timeout
	_ = interval
})

var _ = Describe("reconcileComponent", func() {
	It("calls deploy when enabled", func() {
		called := ""
		err := reconcileComponent(true,
			func() error { called = "deploy"; return nil },
			func() error { called = "delete"; return nil },
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(called).To(Equal("deploy"))
	})

	It("calls delete when disabled", func() {
		called := ""
		err := reconcileComponent(false,
			func() error { called = "deploy"; return nil },
			func() error { called = "delete"; return nil },
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(called).To(Equal("delete"))
	})
})
