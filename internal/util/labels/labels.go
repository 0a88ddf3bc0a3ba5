package labels

import "github.com/imamik/dropvpn/internal/util/naming"

// Standard label keys.
const (
	// KeyInstance holds the instance name.
	KeyInstance = "dropvpn.io/instance"

	// KeyManagedBy identifies the tool that created the resource.
	KeyManagedBy = "dropvpn.io/managed-by"
)

// ManagedByDropvpn is the value of KeyManagedBy.
const ManagedByDropvpn = naming.Tag

// LabelBuilder provides a fluent interface for building resource labels.
type LabelBuilder struct {
	labels map[string]string
}

// NewLabelBuilder creates a builder with the instance name and manager set.
func NewLabelBuilder(instance string) *LabelBuilder {
	return &LabelBuilder{
		labels: map[string]string{
			KeyInstance:  instance,
			KeyManagedBy: ManagedByDropvpn,
		},
	}
}

// WithTags adds each tag as a key with an empty value.
func (lb *LabelBuilder) WithTags(tags ...string) *LabelBuilder {
	for _, t := range tags {
		if t != "" {
			lb.labels[t] = ""
		}
	}
	return lb
}

// Merge adds all labels from the provided map.
func (lb *LabelBuilder) Merge(extra map[string]string) *LabelBuilder {
	for k, v := range extra {
		lb.labels[k] = v
	}
	return lb
}

// Build returns a copy of the labels map.
func (lb *LabelBuilder) Build() map[string]string {
	result := make(map[string]string, len(lb.labels))
	for k, v := range lb.labels {
		result[k] = v
	}
	return result
}
