package dependencies

import (
	"context"
	"fmt"
	"time"

	"github.com/on-the-ground/composable_ive_go/effects"
)

// DateGenerator reports the current date.
type DateGenerator func() time.Time

func (d DateGenerator) Now() time.Time {
	return d()
}

// Span is Now widened to the runtime clock precision.
func (d DateGenerator) Span() effects.TimeSpan {
	return effects.NowAt(d())
}

// Date reads the wall clock when live and is unimplemented in tests.
var Date = NewKey[DateGenerator]("date", time.Now,
	WithTestValue(DateGenerator(func() time.Time {
		panic(fmt.Errorf("%w: %s", ErrUnimplemented, "date"))
	})),
)

// ConstantDate always reports t.
func ConstantDate(t time.Time) DateGenerator {
	return func() time.Time { return t }
}

// Now reads the date generator in ctx.
func Now(ctx context.Context) time.Time {
	return Get(ctx, Date).Now()
}
