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

// Package manifest parses a user-authored StackApp document, applies the
// selected profile overlay, and validates it before it reaches the cluster.
// The CLI's `deploy` subcommand is this package's only caller today; it
// lives out of scope for this repository, but the loader and the
// profile-merge semantics it implements are part of the reconciliation
// engine's contract (spec §8.7) and are tested directly here.
package manifest

import (
	stackv1alpha1 "github.com/stack-cli/stack-operator/api/v1alpha1"
	"github.com/stack-cli/stack-operator/internal/operator"
	"sigs.k8s.io/yaml"
)

// Load parses raw YAML bytes into a StackApp, deep-merging the named
// profile overlay into spec (if profile is non-empty) and validating the
// result. The profiles key is always stripped from the merged document,
// whether or not a profile was selected.
func Load(raw []byte, profile string) (*stackv1alpha1.StackApp, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, &operator.InternalError{Op: "manifest.unmarshal", Err: err}
	}

	if err := applyProfile(doc, profile); err != nil {
		return nil, err
	}

	merged, err := yaml.Marshal(doc)
	if err != nil {
		return nil, &operator.InternalError{Op: "manifest.remarshal", Err: err}
	}

	var app stackv1alpha1.StackApp
	if err := yaml.Unmarshal(merged, &app); err != nil {
		return nil, &operator.InternalError{Op: "manifest.decode", Err: err}
	}

	if err := Validate(&app); err != nil {
		return nil, err
	}
	return &app, nil
}

// applyProfile removes spec.profiles from doc and, when profile is
// non-empty, deep-merges spec.profiles[profile] into spec beforehand.
// Mirrors the original loader's serde_yaml::Mapping merge: overlay scalars
// and arrays replace, overlay maps recurse, everything else is inserted.
func applyProfile(doc map[string]any, profile string) error {
	specRaw, ok := doc["spec"]
	if !ok {
		return &operator.ValidationError{Field: "spec", Reason: "manifest is missing spec"}
	}
	spec, ok := specRaw.(map[string]any)
	if !ok {
		return &operator.ValidationError{Field: "spec", Reason: "spec must be a map"}
	}

	profilesRaw, hadProfiles := spec["profiles"]
	delete(spec, "profiles")

	if profile == "" {
		return nil
	}
	if !hadProfiles {
		return &operator.ValidationError{Field: "profile", Reason: "profile " + profile + " not found in manifest"}
	}
	profiles, ok := profilesRaw.(map[string]any)
	if !ok {
		return &operator.ValidationError{Field: "spec.profiles", Reason: "profiles must be a map"}
	}
	overlayRaw, ok := profiles[profile]
	if !ok {
		return &operator.ValidationError{Field: "profile", Reason: "profile " + profile + " not found in manifest"}
	}
	overlay, ok := overlayRaw.(map[string]any)
	if !ok {
		return &operator.ValidationError{Field: "spec.profiles." + profile, Reason: "profile must be a map"}
	}
	mergeInto(spec, overlay)
	return nil
}

func mergeInto(base, overlay map[string]any) {
	for key, value := range overlay {
		existing, present := base[key]
		if !present {
			base[key] = value
			continue
		}
		overlayMap, overlayIsMap := value.(map[string]any)
		existingMap, existingIsMap := existing.(map[string]any)
		if overlayIsMap && existingIsMap {
			mergeInto(existingMap, overlayMap)
			continue
		}
		base[key] = value
	}
}
