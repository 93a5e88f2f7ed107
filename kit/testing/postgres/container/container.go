package container

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/tinyurl/kit/testing"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	dbName     = "tinyurl"
	dbUser     = "tinyurl"
	dbPassword = "password"
)

type postgresContainer struct {
	uri       string
	container *postgres.PostgresContainer
}

func (p *postgresContainer) GetURI() string {
	return p.uri
}

func (p *postgresContainer) Terminate(ctx context.Context) error {
	if err := p.container.Terminate(ctx); err != nil {
		return errors.Wrap(err, "terminate failed")
	}
	return nil
}

// CreatePostgres runs postgres and executes the schema scripts in order.
func CreatePostgres(ctx context.Context, schemaFilePaths ...string) (testing.PostgresContainer, error) {
	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("docker.io/postgres:15.2-alpine"),
		postgres.WithInitScripts(schemaFilePaths...),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "run container failed")
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get container host failed")
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, errors.Wrap(err, "mapped container port failed")
	}

	return &postgresContainer{
		uri: fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			host,
			dbUser,
			dbPassword,
			dbName,
			port.Port(),
		),
		container: container,
	}, nil
}
