package goroutine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecoverableGo(t *testing.T) {
	res := []string{}

	<-RecoverableGo(
		func() {
			res = append(res, "close item")
			panic("mongo down")
		},
		WithBeforeStart(func() {
			res = append(res, "before start")
		}),
		WithAfterEnded(func() {
			res = append(res, "after ended")
		}),
		WithAfterRecovered(func(p interface{}, stack []byte) {
			res = append(res, "after recovered")
			res = append(res, p.(string))
		}),
	)

	assert.Equal(t, []string{
		"before start",
		"close item",
		"after ended",
		"after recovered",
		"mongo down",
	}, res)
}

func TestRecoverableGoWithoutPanic(t *testing.T) {
	res := []string{}

	<-RecoverableGo(
		func() {
			res = append(res, "close item")
		},
		WithAfterEnded(func() {
			res = append(res, "after ended")
		}),
		WithAfterRecovered(func(p interface{}, stack []byte) {
			res = append(res, "after recovered")
		}),
	)

	assert.Equal(t, []string{"close item", "after ended"}, res)
}
