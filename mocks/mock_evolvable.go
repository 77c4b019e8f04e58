// Package mocks provides testify mocks for the public interfaces of
// evolve-go. They are intended for consumers testing code that drives
// the engine without building real candidate types.
package mocks

import (
	"github.com/XiaoConstantine/evolve-go/pkg/core"
	"github.com/stretchr/testify/mock"
)

// MockEvolvable is a mock implementation of core.Evolvable.
type MockEvolvable[A comparable] struct {
	mock.Mock
}

// Genes mocks the live gene→allele mapping.
func (m *MockEvolvable[A]) Genes() map[string]A {
	args := m.Called()
	if genes, ok := args.Get(0).(map[string]A); ok {
		return genes
	}
	return nil
}

// FitnessLevel mocks the candidate score.
func (m *MockEvolvable[A]) FitnessLevel() float64 {
	args := m.Called()
	return args.Get(0).(float64)
}

// CanSurvive mocks the hard-constraint gate.
func (m *MockEvolvable[A]) CanSurvive() bool {
	args := m.Called()
	return args.Bool(0)
}

// Unique mocks the deduplication key.
func (m *MockEvolvable[A]) Unique() string {
	args := m.Called()
	return args.String(0)
}

// MockCachingEvolvable is a MockEvolvable that additionally implements
// core.AttrCacher.
type MockCachingEvolvable[A comparable] struct {
	MockEvolvable[A]
}

// CacheAttrs mocks the attribute caching signal.
func (m *MockCachingEvolvable[A]) CacheAttrs() {
	m.Called()
}

var (
	_ core.Evolvable[string] = (*MockEvolvable[string])(nil)
	_ core.Evolvable[int]    = (*MockEvolvable[int])(nil)
	_ core.AttrCacher        = (*MockCachingEvolvable[string])(nil)
)
