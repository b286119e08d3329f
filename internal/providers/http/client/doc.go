// Package client builds the outbound HTTP clients of arcks.
//
// Every client is a resty client over the pooled transport of
// hashicorp/go-retryablehttp, with retries disabled: a failed page fetch,
// relay call or upstream call is reported once and never repeated. JSON goes
// through bytedance/sonic and no cookie jar is attached, so requests never
// carry ambient credentials.
//
// Example Usage:
//
//	c := client.New(client.Options{Timeout: 10 * time.Second})
//	resp, err := c.R().SetContext(ctx).Get(url)
package client
