package testutil

import (
	"context"
	"reflect"
	"time"

	"github.com/birdsofspace/spacebirdz-backend/internal/entity"
	"github.com/birdsofspace/spacebirdz-backend/internal/repository"
	"github.com/google/uuid"
)

// SampleQuest inserts a quest with randomized fields into the context
// database. Non-zero fields of init overwrite the sample before insertion.
func SampleQuest(ctx context.Context, init *entity.Quest) entity.Quest {
	questRepo := repository.NewQuestRepository()

	sample := &entity.Quest{
		QuestID:     1,
		Description: uuid.NewString(),
		TokenReward: 100,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := questRepo.Upsert(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if overwriteField.Interface() != reflect.Zero(overwriteField.Type()).Interface() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
