/*
   Copyright 2025 The DIRPX Authors.

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

package builder

import (
	"dirpx.dev/rval/apis"
	"dirpx.dev/rval/registry"
	"dirpx.dev/rval/resolver"
	"dirpx.dev/rval/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds a new apis.Registry for cfg. Classes registered in
// preg are copied over; derived ones are rebuilt on demand since they
// depend on the field tag.
func (b *builder) BuildRegistry(cfg apis.Config, preg apis.Registry) apis.Registry {
	nreg := registry.New(cfg)
	if preg != nil {
		for _, e := range preg.Entries() {
			if e.Class != nil && !e.Class.Derived {
				_ = nreg.Register(e.Type, e.Class)
			}
		}
	}
	return nreg
}

// BuildResolver builds the text, registry, reflect strategy chain over reg.
func (b *builder) BuildResolver(cfg apis.Config, reg apis.Registry, _ apis.Resolver) apis.Resolver {
	return resolver.New(
		strategy.NewTextStrategy(),
		strategy.NewRegistryStrategy(reg),
		strategy.NewReflectStrategy(reg, cfg.FieldTag),
	)
}
