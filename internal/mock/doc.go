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

/*
Package mock contains mock implementations of rval interfaces, intended for
use in unit tests.

Each file in this directory declares the interfaces to mock and carries the
go:generate line that produces them. Generated code lives in a directory of
the same name, in a package following the `mock_*` pattern; for example the
allocator mock generated from `./rc.go` is in `./rc/rc.go`, package
`mock_rc`.
*/
package mock
