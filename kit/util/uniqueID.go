package util

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
)

type UniqueIDGenerate struct {
	snowflakeNode *snowflake.Node
}

var (
	singletonUniqueIDGenerate     *UniqueIDGenerate
	singletonUniqueIDGenerateErr  error
	singletonUniqueIDGenerateOnce sync.Once
)

func GetUniqueIDGenerate() (*UniqueIDGenerate, error) {
	singletonUniqueIDGenerateOnce.Do(func() {
		snowflakeNode, err := snowflake.NewNode(1)
		if err != nil {
			singletonUniqueIDGenerateErr = errors.Wrap(err, "create snowflake failed")
			return
		}
		singletonUniqueIDGenerate = &UniqueIDGenerate{
			snowflakeNode: snowflakeNode,
		}
	})
	return singletonUniqueIDGenerate, singletonUniqueIDGenerateErr
}

func (u UniqueIDGenerate) Generate() *UniqueID {
	return &UniqueID{
		snowflakeID: u.snowflakeNode.Generate(),
	}
}

type UniqueID struct {
	snowflakeID snowflake.ID
}

func (u UniqueID) GetInt64() int64 {
	return u.snowflakeID.Int64()
}

func GetSnowflakeIDInt64() int64 {
	uniqueIDGenerate, err := GetUniqueIDGenerate()
	if err != nil {
		panic(err)
	}
	return uniqueIDGenerate.Generate().GetInt64()
}
