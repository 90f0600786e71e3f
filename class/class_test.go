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

package class_test

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rval/class"
)

type Base struct {
	ID int
}

type Server struct {
	Base
	Host    string `rval:"host"`
	Port    int    `rval:"port,omitempty"`
	Secret  string `rval:"-"`
	Labels  map[string]string
	Done    chan struct{}
	private int
	Parent  *Base
}

func names(t *testing.T, typ reflect.Type) []string {
	t.Helper()
	cls, err := class.FromStruct(typ, "rval")
	require.NoError(t, err)
	out := make([]string, 0, cls.Len())
	for _, f := range cls.Fields {
		out = append(out, f.Name)
	}
	return out
}

func TestFromStruct(t *testing.T) {
	assert.Equal(t,
		[]string{"ID", "host", "port", "Labels", "Parent"},
		names(t, reflect.TypeOf(Server{})))
}

func TestFromStructSlots(t *testing.T) {
	cls, err := class.FromStruct(reflect.TypeOf(Server{}), "rval")
	require.NoError(t, err)

	s := Server{Base: Base{ID: 7}, Host: "h"}
	v := reflect.ValueOf(&s).Elem()

	f, ok := cls.Lookup("id")
	require.True(t, ok)
	assert.Equal(t, int64(7), f.Slot(v).Int())

	f, ok = cls.Lookup("HOST")
	require.True(t, ok, "lookups ignore case")
	f.Slot(v).SetString("example.org")
	assert.Equal(t, "example.org", s.Host)

	_, ok = cls.Lookup("secret")
	assert.False(t, ok)
}

func TestFromStructOtherTag(t *testing.T) {
	type tagged struct {
		A int `json:"alpha"`
		B int `rval:"beta"`
	}
	cls, err := class.FromStruct(reflect.TypeOf(tagged{}), "json")
	require.NoError(t, err)
	assert.Equal(t, "alpha", cls.Fields[0].Name)
	assert.Equal(t, "B", cls.Fields[1].Name)
}

func TestFromStructErrors(t *testing.T) {
	_, err := class.FromStruct(reflect.TypeOf(0), "rval")
	assert.True(t, errors.Is(err, class.ErrNotStruct))

	type dup struct {
		Name  string
		Other string `rval:"NAME"`
	}
	_, err = class.FromStruct(reflect.TypeOf(dup{}), "rval")
	assert.True(t, errors.Is(err, class.ErrDuplicateField), "got %v", err)
}

func TestDescribe(t *testing.T) {
	cls, err := class.Describe[Server]("server").
		Field("address", func(s *Server) any { return &s.Host }).
		Field("port", func(s *Server) any { return &s.Port }).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "server", cls.Name)
	assert.Equal(t, reflect.TypeOf(Server{}), cls.Type)
	require.Equal(t, 2, cls.Len())
	assert.Equal(t, reflect.TypeOf(""), cls.Fields[0].Type)
	assert.Equal(t, reflect.TypeOf(0), cls.Fields[1].Type)

	s := Server{Host: "a", Port: 1}
	v := reflect.ValueOf(&s).Elem()
	f, ok := cls.Lookup("Address")
	require.True(t, ok)
	assert.Equal(t, "a", f.Slot(v).String())
	cls.Fields[1].Slot(v).SetInt(8080)
	assert.Equal(t, 8080, s.Port)
}

func TestDescribeErrors(t *testing.T) {
	_, err := class.Describe[Server]("").
		Field("host", func(s *Server) any { return &s.Host }).
		Field("HOST", func(s *Server) any { return &s.Host }).
		Field("bad", func(s *Server) any { return s.Port }).
		Field("", func(s *Server) any { return &s.Port }).
		Build()
	require.Error(t, err)
	assert.True(t, errors.Is(err, class.ErrDuplicateField), "got %v", err)
	assert.True(t, errors.Is(err, class.ErrBadAccessor), "got %v", err)
	assert.Contains(t, err.Error(), "empty field name")

	_, err = class.Describe[int]("").Build()
	assert.True(t, errors.Is(err, class.ErrNotStruct))

	assert.Panics(t, func() { class.Describe[int]("").MustBuild() })
}

func TestDeriver(t *testing.T) {
	cls, err := class.Deriver("rval")(reflect.TypeOf(Base{}))
	require.NoError(t, err)
	assert.Equal(t, "ID", cls.Fields[0].Name)
}
