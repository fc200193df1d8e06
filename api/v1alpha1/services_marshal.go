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

import "encoding/json"

// MarshalJSON flattens Extra alongside Web so the wire form is a single
// object keyed by service name, with "web" required among the keys. This
// mirrors the Rust CRD's #[serde(flatten)] on the extra-services map.
func (s Services) MarshalJSON() ([]byte, error) {
	out := make(map[string]ServiceSpec, len(s.Extra)+1)
	for k, v := range s.Extra {
		out[k] = v
	}
	out["web"] = s.Web
	return json.Marshal(out)
}

// UnmarshalJSON splits the flat service map back into Web and Extra,
// preserving any unrecognized service name instead of rejecting it — the
// schema is intentionally open so a user can name services freely.
func (s *Services) UnmarshalJSON(data []byte) error {
	var flat map[string]ServiceSpec
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	web, ok := flat["web"]
	if !ok {
		return errMissingWebService
	}
	delete(flat, "web")
	s.Web = web
	s.Extra = flat
	return nil
}

var errMissingWebService = jsonFieldError("services.web is required")

type jsonFieldError string

func (e jsonFieldError) Error() string { return string(e) }
