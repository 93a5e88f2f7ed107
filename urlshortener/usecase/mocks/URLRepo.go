package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/superj80820/tinyurl/domain"
)

// URLRepo is a mock type for the domain.URLRepo type
type URLRepo struct {
	mock.Mock
}

func (_m *URLRepo) Lookup(ctx context.Context, shortURL string) (*domain.URL, error) {
	ret := _m.Called(ctx, shortURL)

	var r0 *domain.URL
	if rf, ok := ret.Get(0).(func(context.Context, string) *domain.URL); ok {
		r0 = rf(ctx, shortURL)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.URL)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, shortURL)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *URLRepo) Insert(ctx context.Context, url *domain.URLInsert) (*domain.URL, error) {
	ret := _m.Called(ctx, url)

	var r0 *domain.URL
	if rf, ok := ret.Get(0).(func(context.Context, *domain.URLInsert) *domain.URL); ok {
		r0 = rf(ctx, url)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.URL)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, *domain.URLInsert) error); ok {
		r1 = rf(ctx, url)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewURLRepo creates a new instance of URLRepo. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewURLRepo(t interface {
	mock.TestingT
	Cleanup(func())
}) *URLRepo {
	m := &URLRepo{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
