// Package export flattens cost results into the per-hub report and writes it as CSV or XLSX.
//
// Each row carries five item columns followed by sell price, on-market count, stock,
// order price and average daily volume for every output hub. Written reports can be
// published to the object storage bucket.
package export
