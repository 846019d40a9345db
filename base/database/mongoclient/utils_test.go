package mongoclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/bidhaus/goapi/base/ptr"
)

func TestMakeBsonM(t *testing.T) {
	type PatchableItem struct {
		Title       *string `bson:"title,omitempty"`
		Description *string `bson:"description,omitempty"`
		Closed      bool    `bson:"closed"`
		WinningBid  string  `bson:"winningBid"`
	}

	patchable := &PatchableItem{}
	patchable.Title = ptr.String("")
	patchable.Closed = true

	updater, err := MakeBsonM(patchable)

	assert.NoError(t, err)
	assert.Equal(
		t,
		bson.M{
			"title":  "",
			"closed": true,
			// winningBid is empty, so ignored
		},
		updater,
	)
}
