// Package capture delivers raw CEC frames one at a time from capture sources:
// hex text lines (including cec-client traffic logs), length-prefixed binary
// records, and serial sniffers that print hex lines.
package capture
