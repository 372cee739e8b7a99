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
	"testing"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func TestValidatePublishedServerURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{
			name:    "valid https URL",
			url:     "https://media.example.com",
			wantErr: false,
		},
		{
			name:    "valid http URL with path",
			url:     "http://media.example.com/jellyfin",
			wantErr: false,
		},
		{
			name:    "missing scheme",
			url:     "media.example.com",
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			url:     "ftp://media.example.com",
			wantErr: true,
		},
		{
			name:    "scheme without host",
			url:     "https://",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePublishedServerURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("validatePublishedServerURL() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestJellyfinServer_ValidateIngress(t *testing.T) {
	tests := []struct {
		name    string
		ingress IngressConfig
		wantErr bool
	}{
		{
			name:    "empty ingress config is valid",
			ingress: IngressConfig{Enabled: true},
			wantErr: false,
		},
		{
			name:    "valid host and path",
			ingress: IngressConfig{Enabled: true, Host: "media.example.com", Path: "/"},
			wantErr: false,
		},
		{
			name:    "host with scheme rejected",
			ingress: IngressConfig{Enabled: true, Host: "https://media.example.com"},
			wantErr: true,
		},
		{
			name:    "host with underscore rejected",
			ingress: IngressConfig{Enabled: true, Host: "media_server.example.com"},
			wantErr: true,
		},
		{
			name:    "relative path rejected",
			ingress: IngressConfig{Enabled: true, Path: "jellyfin"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := &JellyfinServer{
				Spec: JellyfinServerSpec{Ingress: tt.ingress.DeepCopy()},
			}
			err := server.validateIngress()
			if (err != nil) != tt.wantErr {
				t.Errorf("validateIngress() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestJellyfinServer_ValidateMedia(t *testing.T) {
	tests := []struct {
		name         string
		replicas     int32
		media        []MediaMount
		wantErr      bool
		wantWarnings int
	}{
		{
			name:    "no media mounts",
			media:   nil,
			wantErr: false,
		},
		{
			name: "valid mounts",
			media: []MediaMount{
				{Name: "movies", ClaimName: "movies-pvc"},
				{Name: "shows", ClaimName: "shows-pvc", MountPath: "/media/tv"},
			},
			wantErr: false,
		},
		{
			name:    "missing name",
			media:   []MediaMount{{ClaimName: "movies-pvc"}},
			wantErr: true,
		},
		{
			name:    "missing claim name",
			media:   []MediaMount{{Name: "movies"}},
			wantErr: true,
		},
		{
			name: "duplicate names",
			media: []MediaMount{
				{Name: "movies", ClaimName: "a", MountPath: "/media/a"},
				{Name: "movies", ClaimName: "b", MountPath: "/media/b"},
			},
			wantErr: true,
		},
		{
			name: "duplicate mount paths via default",
			media: []MediaMount{
				{Name: "movies", ClaimName: "a"},
				{Name: "shows", ClaimName: "b", MountPath: "/media/movies"},
			},
			wantErr: true,
		},
		{
			name:    "mount path shadowing config volume",
			media:   []MediaMount{{Name: "movies", ClaimName: "a", MountPath: "/config/media"}},
			wantErr: true,
		},
		{
			name:    "relative mount path",
			media:   []MediaMount{{Name: "movies", ClaimName: "a", MountPath: "media"}},
			wantErr: true,
		},
		{
			name:         "shared media with multiple replicas warns",
			replicas:     3,
			media:        []MediaMount{{Name: "movies", ClaimName: "movies-pvc"}},
			wantErr:      false,
			wantWarnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := &JellyfinServer{
				Spec: JellyfinServerSpec{Replicas: tt.replicas, Media: tt.media},
			}
			warnings, err := server.validateMedia()
			if (err != nil) != tt.wantErr {
				t.Errorf("validateMedia() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(warnings) != tt.wantWarnings {
				t.Errorf("validateMedia() warnings = %d, want %d", len(warnings), tt.wantWarnings)
			}
		})
	}
}

func TestJellyfinServerDefaulter_Default(t *testing.T) {
	defaulter := &JellyfinServerDefaulter{}

	server := &JellyfinServer{
		ObjectMeta: metav1.ObjectMeta{Name: "jellyfin"},
		Spec: JellyfinServerSpec{
			Ingress: &IngressConfig{Enabled: true},
			Media:   []MediaMount{{Name: "movies", ClaimName: "movies-pvc"}},
		},
	}

	if err := defaulter.Default(context.Background(), server); err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	if server.Spec.Port != 8096 {
		t.Errorf("Port = %d, want 8096", server.Spec.Port)
	}
	if server.Spec.Ingress.Path != "/" {
		t.Errorf("Ingress.Path = %q, want \"/\"", server.Spec.Ingress.Path)
	}
	if server.Spec.Media[0].MountPath != "/media/movies" {
		t.Errorf("Media[0].MountPath = %q, want \"/media/movies\"", server.Spec.Media[0].MountPath)
	}
}

func TestJellyfinServerDefaulter_PreservesExplicitValues(t *testing.T) {
	defaulter := &JellyfinServerDefaulter{}

	server := &JellyfinServer{
		ObjectMeta: metav1.ObjectMeta{Name: "jellyfin"},
		Spec: JellyfinServerSpec{
			Port:    9096,
			Ingress: &IngressConfig{Enabled: true, Path: "/media"},
		},
	}

	if err := defaulter.Default(context.Background(), server); err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	if server.Spec.Port != 9096 {
		t.Errorf("Port = %d, want 9096", server.Spec.Port)
	}
	if server.Spec.Ingress.Path != "/media" {
		t.Errorf("Ingress.Path = %q, want \"/media\"", server.Spec.Ingress.Path)
	}
}
