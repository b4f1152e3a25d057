package assoofs

import "github.com/sirupsen/logrus"

// Option configures a Volume at Mount time.
type Option func(v *Volume) error

// WithLogger attaches a logrus entry used for all of this mount's core
// logging. Defaults to logrus.StandardLogger(); Mount tags whichever
// entry is used with the superblock's inodes_count and block_size.
func WithLogger(log *logrus.Entry) Option {
	return func(v *Volume) error {
		v.log = log
		return nil
	}
}

// WithClock overrides the clock used to stamp new inodes. Defaults to
// RealClock{}; tests use a fixed-time Clock instead.
func WithClock(c Clock) Option {
	return func(v *Volume) error {
		v.clock = c
		return nil
	}
}
