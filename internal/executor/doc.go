/*
Package executor performs single HTTP reads against the posts API.

# Overview

Execute sends one request and captures status, headers, body and timing
into a types.FetchResult. Transport failures (DNS, refused connections,
timeouts, cancellation) do not return an error: they are recorded in
FetchResult.Error so callers can log them alongside the timing. An error
is returned only when the request cannot be built or the client cannot be
configured.

# TLS Configuration

TLS support includes:
  - Custom CA certificates
  - Client certificates (mTLS)
  - InsecureSkipVerify for development

# Example Usage

	req := &types.FetchRequest{
		Method: http.MethodGet,
		URL:    "https://jsonplaceholder.typicode.com/posts/1",
	}

	result, err := executor.Execute(ctx, req, nil, 10*time.Second)
	if err != nil {
		return err
	}
	if result.Error != "" {
		return errors.New(result.Error)
	}
	fmt.Printf("Status: %d\n", result.Status)

# Thread Safety

Execute is safe to call concurrently. Each call builds its own client.
*/
package executor
