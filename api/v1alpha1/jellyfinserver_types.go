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
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// JellyfinServerSpec defines the desired state of JellyfinServer
type JellyfinServerSpec struct {
	// Image specifies the Jellyfin container image to use
	// +kubebuilder:default="jellyfin/jellyfin:unstable"
	// +optional
	Image string `json:"image,omitempty"`

	// ImagePullPolicy specifies the image pull policy
	// +kubebuilder:default="IfNotPresent"
	// +optional
	ImagePullPolicy corev1.PullPolicy `json:"imagePullPolicy,omitempty"`

	// ImagePullSecrets specifies secrets for pulling images from private registries
	// +optional
	ImagePullSecrets []corev1.LocalObjectReference `json:"imagePullSecrets,omitempty"`

	// Replicas is the number of Jellyfin units to run.
	// Each replica gets its own config volume; media volumes are shared.
	// +kubebuilder:validation:Minimum=0
	// +kubebuilder:default=1
	// +optional
	Replicas int32 `json:"replicas,omitempty"`

	// Port is the HTTP port Jellyfin listens on. The Service, Ingress
	// backend and probes all follow this value.
	// +kubebuilder:validation:Minimum=1
	// +kubebuilder:validation:Maximum=65535
	// +kubebuilder:default=8096
	// +optional
	Port int32 `json:"port,omitempty"`

	// ExternalHostname is the hostname published to the ingress layer.
	// Defaults to the JellyfinServer name, matching the deployed
	// application name.
	// +optional
	ExternalHostname string `json:"externalHostname,omitempty"`

	// PublishedServerURL is the URL Jellyfin advertises to clients
	// (written into network.xml). Typically the external URL behind the
	// ingress, e.g. "https://media.example.com".
	// +optional
	PublishedServerURL string `json:"publishedServerUrl,omitempty"`

	// Ingress configures publication of the server to an ingress
	// controller. While enabled, an Ingress object carrying the
	// host/port pair exists; when disabled or removed, it is retracted.
	// +optional
	Ingress *IngressConfig `json:"ingress,omitempty"`

	// Service configures the HTTP Service fronting the Jellyfin pods
	// +optional
	Service *ServiceConfig `json:"service,omitempty"`

	// Storage configures the config and cache volumes
	// +optional
	Storage StorageConfig `json:"storage,omitempty"`

	// Media mounts existing PersistentVolumeClaims holding media
	// libraries into every Jellyfin pod.
	// +optional
	Media []MediaMount `json:"media,omitempty"`

	// Resources specifies compute resources for Jellyfin pods
	// +optional
	Resources corev1.ResourceRequirements `json:"resources,omitempty"`

	// Env sets additional environment variables on the Jellyfin container
	// +optional
	Env []corev1.EnvVar `json:"env,omitempty"`

	// NodeSelector for pod scheduling
	// +optional
	NodeSelector map[string]string `json:"nodeSelector,omitempty"`

	// Tolerations for pod scheduling
	// +optional
	Tolerations []corev1.Toleration `json:"tolerations,omitempty"`

	// Affinity for pod scheduling
	// +optional
	Affinity *corev1.Affinity `json:"affinity,omitempty"`

	// PodAnnotations to add to Jellyfin pods
	// +optional
	PodAnnotations map[string]string `json:"podAnnotations,omitempty"`

	// PodLabels to add to Jellyfin pods
	// +optional
	PodLabels map[string]string `json:"podLabels,omitempty"`

	// PriorityClassName for Jellyfin pods
	// +optional
	PriorityClassName string `json:"priorityClassName,omitempty"`

	// ServiceAccountName for Jellyfin pods
	// +optional
	ServiceAccountName string `json:"serviceAccountName,omitempty"`

	// SecurityContext for Jellyfin pods
	// +optional
	SecurityContext *corev1.PodSecurityContext `json:"securityContext,omitempty"`

	// ContainerSecurityContext for the Jellyfin container
	// +optional
	ContainerSecurityContext *corev1.SecurityContext `json:"containerSecurityContext,omitempty"`
}

// IngressConfig configures how the server is related to the ingress layer
type IngressConfig struct {
	// Enabled publishes the server through an Ingress object.
	// Disabling retracts the published host/port.
	// +kubebuilder:default=true
	// +optional
	Enabled bool `json:"enabled,omitempty"`

	// Host is the hostname routed to the server.
	// Defaults to spec.externalHostname (and ultimately the object name).
	// +optional
	Host string `json:"host,omitempty"`

	// ClassName selects the ingress controller handling this Ingress
	// +optional
	ClassName *string `json:"className,omitempty"`

	// Path is the HTTP path prefix routed to the server
	// +kubebuilder:default="/"
	// +optional
	Path string `json:"path,omitempty"`

	// Annotations to add to the Ingress object (e.g. cert-manager or
	// proxy body-size settings)
	// +optional
	Annotations map[string]string `json:"annotations,omitempty"`

	// TLS configuration passed through to the Ingress
	// +optional
	TLS []networkingv1.IngressTLS `json:"tls,omitempty"`
}

// ServiceConfig configures the HTTP Service for Jellyfin
type ServiceConfig struct {
	// Type is the Kubernetes Service type
	// +kubebuilder:validation:Enum=ClusterIP;NodePort;LoadBalancer
	// +kubebuilder:default="ClusterIP"
	// +optional
	Type corev1.ServiceType `json:"type,omitempty"`

	// Annotations to add to the Service
	// +optional
	Annotations map[string]string `json:"annotations,omitempty"`
}

// StorageConfig configures the config and cache volumes
type StorageConfig struct {
	// Config configures the per-replica config volume (Jellyfin's
	// database and settings, mounted at /config).
	// Defaults to a 5Gi PVC per replica.
	// +optional
	Config *VolumeConfig `json:"config,omitempty"`

	// Cache configures the cache volume (transcode segments and image
	// caches, mounted at /cache). When unset an EmptyDir is used.
	// +optional
	Cache *VolumeConfig `json:"cache,omitempty"`
}

// VolumeConfig configures a dynamically provisioned volume
type VolumeConfig struct {
	// Size is the requested volume size
	// +optional
	Size resource.Quantity `json:"size,omitempty"`

	// StorageClassName selects the storage class for the volume
	// +optional
	StorageClassName *string `json:"storageClassName,omitempty"`
}

// MediaMount mounts an existing PersistentVolumeClaim holding media
// libraries. Claims shared across replicas must support ReadWriteMany.
type MediaMount struct {
	// Name identifies the mount. Used as the volume name and the
	// default mount path suffix.
	// +required
	Name string `json:"name"`

	// ClaimName is the existing PersistentVolumeClaim to mount
	// +required
	ClaimName string `json:"claimName"`

	// MountPath is where the claim is mounted in the container.
	// Defaults to /media/<name>.
	// +optional
	MountPath string `json:"mountPath,omitempty"`

	// SubPath mounts a sub-directory of the claim instead of its root
	// +optional
	SubPath string `json:"subPath,omitempty"`

	// ReadOnly mounts the claim read-only
	// +optional
	ReadOnly bool `json:"readOnly,omitempty"`
}

// ServerEndpoints contains the addresses the server is reachable at
type ServerEndpoints struct {
	// Internal is the in-cluster HTTP endpoint (the Service address)
	// +optional
	Internal string `json:"internal,omitempty"`

	// External is the published URL while the ingress relation is
	// active; absent otherwise
	// +optional
	External string `json:"external,omitempty"`
}

// JellyfinServerStatus defines the observed state of JellyfinServer
type JellyfinServerStatus struct {
	// Phase is a high-level summary of the server state
	// +optional
	Phase string `json:"phase,omitempty"`

	// ReadyReplicas is the number of Jellyfin pods ready to serve
	// +optional
	ReadyReplicas int32 `json:"readyReplicas,omitempty"`

	// ObservedGeneration is the generation last successfully reconciled
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// Conditions represent the latest available observations
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`

	// Endpoints are the addresses the server is reachable at
	// +optional
	Endpoints *ServerEndpoints `json:"endpoints,omitempty"`

	// Version is the Jellyfin version reported by the system API
	// +optional
	Version string `json:"version,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=jf
// +kubebuilder:printcolumn:name="Replicas",type="integer",JSONPath=".spec.replicas"
// +kubebuilder:printcolumn:name="Ready",type="integer",JSONPath=".status.readyReplicas"
// +kubebuilder:printcolumn:name="Version",type="string",JSONPath=".status.version"
// +kubebuilder:printcolumn:name="Phase",type="string",JSONPath=".status.phase"
// +kubebuilder:printcolumn:name="Age",type="date",JSONPath=".metadata.creationTimestamp"

// JellyfinServer is the Schema for the jellyfinservers API
type JellyfinServer struct {
	metav1.TypeMeta `json:",inline"`

	// +optional
	metav1.ObjectMeta `json:"metadata,omitzero"`

	// +optional
	Spec JellyfinServerSpec `json:"spec,omitzero"`

	// +optional
	Status JellyfinServerStatus `json:"status,omitzero"`
}

// +kubebuilder:object:root=true

// JellyfinServerList contains a list of JellyfinServer
type JellyfinServerList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitzero"`
	Items           []JellyfinServer `json:"items"`
}

func init() {
	SchemeBuilder.Register(&JellyfinServer{}, &JellyfinServerList{})
}
