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

package rc

import "github.com/prometheus/client_golang/prometheus"

var (
	instancesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "rval",
		Subsystem: "rc",
		Name:      "instances_created_total",
		Help:      "Instances constructed by the ownership kernel.",
	})
	instancesDestroyed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "rval",
		Subsystem: "rc",
		Name:      "instances_destroyed_total",
		Help:      "Instances whose last strong reference was released.",
	})
	blocksFreed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "rval",
		Subsystem: "rc",
		Name:      "blocks_released_total",
		Help:      "Control blocks whose last weak reference was released.",
	})
	weakLockMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "rval",
		Subsystem: "rc",
		Name:      "weak_lock_misses_total",
		Help:      "Weak upgrades attempted after the instance was destroyed.",
	})
)

// Collectors returns the kernel metrics for registration with a
// prometheus.Registerer.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		instancesCreated,
		instancesDestroyed,
		blocksFreed,
		weakLockMisses,
	}
}
