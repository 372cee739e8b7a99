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

package v1alpha1

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"
	ctrl "sigs.k8s.io/controller-runtime"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/webhook/admission"
)

var jellyfinserverlog = logf.Log.WithName("jellyfinserver-resource")

// SetupWebhookWithManager sets up the webhook with the Manager.
func (r *JellyfinServer) SetupWebhookWithManager(mgr ctrl.Manager) error {
	return ctrl.NewWebhookManagedBy(mgr, r).
		WithDefaulter(&JellyfinServerDefaulter{}).
		WithValidator(&JellyfinServerValidator{}).
		Complete()
}

// +kubebuilder:webhook:path=/mutate-media-sed-i-io-v1alpha1-jellyfinserver,mutating=true,failurePolicy=fail,sideEffects=None,groups=media.sed-i.io,resources=jellyfinservers,verbs=create;update,versions=v1alpha1,name=mjellyfinserver.kb.io,admissionReviewVersions=v1

var _ admission.Defaulter[*JellyfinServer] = &JellyfinServerDefaulter{}

// JellyfinServerDefaulter handles defaulting for JellyfinServer.
type JellyfinServerDefaulter struct{}

// Default implements admission.Defaulter so a webhook will be registered for the type.
func (d *JellyfinServerDefaulter) Default(ctx context.Context, obj *JellyfinServer) error {
	jellyfinserverlog.Info("default", "name", obj.Name)

	if obj.Spec.Port == 0 {
		obj.Spec.Port = 8096
	}

	if obj.Spec.Ingress != nil && obj.Spec.Ingress.Path == "" {
		obj.Spec.Ingress.Path = "/"
	}

	// Media mounts default to /media/<name>
	for i := range obj.Spec.Media {
		if obj.Spec.Media[i].MountPath == "" && obj.Spec.Media[i].Name != "" {
			obj.Spec.Media[i].MountPath = "/media/" + obj.Spec.Media[i].Name
		}
	}

	return nil
}

// +kubebuilder:webhook:path=/validate-media-sed-i-io-v1alpha1-jellyfinserver,mutating=false,failurePolicy=fail,sideEffects=None,groups=media.sed-i.io,resources=jellyfinservers,verbs=create;update,versions=v1alpha1,name=vjellyfinserver.kb.io,admissionReviewVersions=v1

var _ admission.Validator[*JellyfinServer] = &JellyfinServerValidator{}

// JellyfinServerValidator handles validation for JellyfinServer.
type JellyfinServerValidator struct{}

// ValidateCreate implements admission.Validator so a webhook will be registered for the type.
func (v *JellyfinServerValidator) ValidateCreate(ctx context.Context, obj *JellyfinServer) (admission.Warnings, error) {
	jellyfinserverlog.Info("validate create", "name", obj.Name)
	return obj.validateJellyfinServer()
}

// ValidateUpdate implements admission.Validator so a webhook will be registered for the type.
func (v *JellyfinServerValidator) ValidateUpdate(ctx context.Context, oldObj, newObj *JellyfinServer) (admission.Warnings, error) {
	jellyfinserverlog.Info("validate update", "name", newObj.Name)
	return newObj.validateJellyfinServer()
}

// ValidateDelete implements admission.Validator so a webhook will be registered for the type.
func (v *JellyfinServerValidator) ValidateDelete(ctx context.Context, obj *JellyfinServer) (admission.Warnings, error) {
	jellyfinserverlog.Info("validate delete", "name", obj.Name)
	return nil, nil
}

// validateJellyfinServer validates the JellyfinServer spec.
func (r *JellyfinServer) validateJellyfinServer() (admission.Warnings, error) {
	var warnings admission.Warnings

	if r.Spec.Port != 0 && (r.Spec.Port < 1 || r.Spec.Port > 65535) {
		return warnings, fmt.Errorf("port must be between 1 and 65535")
	}

	if r.Spec.ExternalHostname != "" {
		if errs := validation.IsDNS1123Subdomain(r.Spec.ExternalHostname); len(errs) > 0 {
			return warnings, fmt.Errorf("externalHostname is not a valid DNS subdomain: %s", strings.Join(errs, "; "))
		}
	}

	if r.Spec.PublishedServerURL != "" {
		if err := validatePublishedServerURL(r.Spec.PublishedServerURL); err != nil {
			return warnings, err
		}
	}

	if r.Spec.Ingress != nil {
		if err := r.validateIngress(); err != nil {
			return warnings, err
		}
	}

	mediaWarnings, err := r.validateMedia()
	warnings = append(warnings, mediaWarnings...)
	if err != nil {
		return warnings, err
	}

	return warnings, nil
}

// validatePublishedServerURL checks the URL Jellyfin advertises to clients.
func validatePublishedServerURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("publishedServerUrl is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("publishedServerUrl must use http or https scheme")
	}
	if u.Host == "" {
		return fmt.Errorf("publishedServerUrl must include a host")
	}
	return nil
}

// validateIngress validates the ingress publication settings.
func (r *JellyfinServer) validateIngress() error {
	ing := r.Spec.Ingress

	if ing.Host != "" {
		if errs := validation.IsDNS1123Subdomain(ing.Host); len(errs) > 0 {
			return fmt.Errorf("ingress.host is not a valid DNS subdomain: %s", strings.Join(errs, "; "))
		}
	}

	if ing.Path != "" && !strings.HasPrefix(ing.Path, "/") {
		return fmt.Errorf("ingress.path must start with '/'")
	}

	return nil
}

// validateMedia validates media mount configuration.
func (r *JellyfinServer) validateMedia() (admission.Warnings, error) {
	var warnings admission.Warnings

	seenNames := make(map[string]bool, len(r.Spec.Media))
	seenPaths := make(map[string]bool, len(r.Spec.Media))
	for i, m := range r.Spec.Media {
		if m.Name == "" {
			return warnings, fmt.Errorf("media[%d].name is required", i)
		}
		if errs := validation.IsDNS1123Label(m.Name); len(errs) > 0 {
			return warnings, fmt.Errorf("media[%d].name is not a valid DNS label: %s", i, strings.Join(errs, "; "))
		}
		if m.ClaimName == "" {
			return warnings, fmt.Errorf("media[%d].claimName is required", i)
		}
		if seenNames[m.Name] {
			return warnings, fmt.Errorf("media mount name %q is duplicated", m.Name)
		}
		seenNames[m.Name] = true

		path := m.MountPath
		if path == "" {
			path = "/media/" + m.Name
		}
		if !strings.HasPrefix(path, "/") {
			return warnings, fmt.Errorf("media[%d].mountPath must be absolute", i)
		}
		if seenPaths[path] {
			return warnings, fmt.Errorf("media mount path %q is duplicated", path)
		}
		seenPaths[path] = true

		// The config and cache paths are owned by the operator
		if path == "/config" || path == "/cache" || strings.HasPrefix(path, "/config/") || strings.HasPrefix(path, "/cache/") {
			return warnings, fmt.Errorf("media[%d].mountPath %q conflicts with the managed config/cache volumes", i, path)
		}
	}

	if r.Spec.Replicas > 1 && len(r.Spec.Media) > 0 {
		warnings = append(warnings,
			"media claims are mounted by every replica; they must support ReadWriteMany access")
	}

	return warnings, nil
}
