package ctx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type testsuite struct {
	suite.Suite
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestWithValue() {
	bg := Background()
	ctx := WithValue(bg, "itemId", "item-1")
	ts.Equal("item-1", ctx.Value("itemId"))
}

func (ts *testsuite) TestWithValues() {
	bg := Background()
	ctx := WithValues(bg, map[string]interface{}{
		"itemId": "item-1",
		"bidder": "alice@example.com",
	})
	ts.Equal("item-1", ctx.Value("itemId"))
	ts.Equal("alice@example.com", ctx.Value("bidder"))
}

func (ts *testsuite) TestWithCancel() {
	bg := Background()
	ctx, cancel := WithCancel(bg)
	defer cancel()
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	select {
	case <-ctx.Done():
		ts.Equal(context.Canceled, ctx.Err())
	case <-time.After(100 * time.Millisecond):
		ts.Fail("cancel did not propagate")
	}
}

func (ts *testsuite) TestTimeout() {
	bg := Background()
	ctx, cancel := WithTimeout(bg, 10*time.Millisecond)
	defer cancel()
	select {
	case <-ctx.Done():
		ts.Equal(context.DeadlineExceeded, ctx.Err())
	case <-time.After(100 * time.Millisecond):
		ts.Fail("deadline did not fire")
	}
}
