package testing

import (
	"context"

	"github.com/superj80820/tinyurl/kit/util"
)

// EnableContainerTest gates the tests that need a docker daemon.
func EnableContainerTest() bool {
	return util.GetEnvBool("ENABLE_CONTAINER_TEST", false)
}

type RedisContainer interface {
	GetURI() string
	Terminate(context.Context) error
}

type PostgresContainer interface {
	GetURI() string
	Terminate(context.Context) error
}
