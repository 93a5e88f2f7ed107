package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// URLCacheRepo is a mock type for the domain.URLCacheRepo type
type URLCacheRepo struct {
	mock.Mock
}

func (_m *URLCacheRepo) Get(ctx context.Context, shortURL string) (string, error) {
	ret := _m.Called(ctx, shortURL)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, string) string); ok {
		r0 = rf(ctx, shortURL)
	} else {
		r0 = ret.String(0)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, shortURL)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *URLCacheRepo) Set(ctx context.Context, shortURL string, baseURL string) error {
	ret := _m.Called(ctx, shortURL, baseURL)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string) error); ok {
		r0 = rf(ctx, shortURL, baseURL)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewURLCacheRepo creates a new instance of URLCacheRepo. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewURLCacheRepo(t interface {
	mock.TestingT
	Cleanup(func())
}) *URLCacheRepo {
	m := &URLCacheRepo{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
