package orm

import (
	"context"

	"github.com/pkg/errors"
	"github.com/superj80820/tinyurl/domain"
	ormKit "github.com/superj80820/tinyurl/kit/orm"
	utilKit "github.com/superj80820/tinyurl/kit/util"
)

type urlEntity struct {
	*domain.URL
}

func (urlEntity) TableName() string {
	return "data_tiny"
}

type urlRepo struct {
	db *ormKit.DB
}

func CreateURLRepo(db *ormKit.DB) domain.URLRepo {
	return &urlRepo{db: db}
}

// AutoMigrate creates the data_tiny table, for databases not provisioned with schema.sql.
func AutoMigrate(db *ormKit.DB) error {
	if err := db.AutoMigrate(&urlEntity{}); err != nil {
		return errors.Wrap(err, "migrate url table failed")
	}
	return nil
}

func (u *urlRepo) Lookup(ctx context.Context, shortURL string) (*domain.URL, error) {
	entity := urlEntity{URL: new(domain.URL)}
	err := u.db.WithContext(ctx).Where("short_url = ?", shortURL).First(&entity).Error
	if errors.Is(err, ormKit.ErrRecordNotFound) {
		return nil, errors.Wrap(domain.ErrNoData, "get url failed")
	} else if err != nil {
		return nil, errors.Wrap(err, "get url failed")
	}
	return entity.URL, nil
}

func (u *urlRepo) Insert(ctx context.Context, url *domain.URLInsert) (*domain.URL, error) {
	uniqueIDGenerate, err := utilKit.GetUniqueIDGenerate()
	if err != nil {
		return nil, errors.Wrap(err, "generate unique id failed")
	}

	entity := urlEntity{
		URL: &domain.URL{
			ID:          uniqueIDGenerate.Generate().GetInt64(),
			BaseURL:     url.BaseURL,
			ShortURL:    url.ShortURL,
			CreatedAt:   url.CreatedAt.UTC(),
			CreatedByIP: url.CreatedByIP,
		},
	}

	if err := u.db.WithContext(ctx).Create(&entity).Error; err != nil {
		if _, ok := ormKit.ConvertDuplicatedErr(err); ok {
			return nil, errors.Wrap(domain.ErrDuplicate, "save url failed")
		}
		return nil, errors.Wrap(err, "save url failed")
	}

	return entity.URL, nil
}
