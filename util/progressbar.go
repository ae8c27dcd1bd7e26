package util

import "github.com/schollz/progressbar/v3"

// ExtractionProgressBar returns a bar sized to total bytes across every
// file being extracted in this run, advanced per-file via Add64 as each
// extraction completes. A negative or zero total renders a spinner
// instead of a percentage, matching progressbar's own convention for
// unknown-size transfers.
func ExtractionProgressBar(total int64, description string, options ...progressbar.Option) *progressbar.ProgressBar {
	opts := append([]progressbar.Option{
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	}, options...)

	return progressbar.NewOptions64(total, opts...)
}
