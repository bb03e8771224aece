package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/jpillora/backoff"
)

// get retries transient failures with exponential backoff so the client can
// be pointed at a server that is still coming up.
func get(requestUrl string, attempts int) (string, error) {
	b := &backoff.Backoff{
		Min:    100 * time.Millisecond,
		Max:    2 * time.Second,
		Jitter: true,
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		response, err := http.Get(requestUrl)
		if err != nil {
			lastErr = err
			time.Sleep(b.Duration())
			continue
		}

		body, err := io.ReadAll(response.Body)
		response.Body.Close()
		if err != nil {
			lastErr = err
			time.Sleep(b.Duration())
			continue
		}

		if response.StatusCode != http.StatusOK {
			return "", fmt.Errorf("status %d: %s", response.StatusCode, string(body))
		}
		return string(body), nil
	}
	return "", lastErr
}

func main() {
	host := flag.String("host", "localhost:8080", "entropyd server in <host>:<port> form")
	op := flag.String("op", "bytes", "operation to perform: bytes, range or jitter")
	count := flag.Uint64("count", 32, "byte count for the bytes operation")
	begin := flag.Uint64("begin", 0, "inclusive lower bound for the range operation")
	end := flag.Uint64("end", 100, "inclusive upper bound for the range operation")
	policy := flag.String("policy", "", "jitter policy name, overrides expiration and ratio")
	expiration := flag.String("expiration", "", "expiration duration for the jitter operation, e.g. 10s")
	ratio := flag.Uint("ratio", 0, "jitter ratio in [0, 255], 0 means no jitter")
	attempts := flag.Int("attempts", 5, "number of request attempts before giving up")
	flag.Parse()

	flag.VisitAll(func(f *flag.Flag) {
		fmt.Printf("Flag: --%s=%q\n", f.Name, f.Value)
	})

	query := url.Values{}
	var path string
	switch *op {
	case "bytes":
		path = "/v1/bytes"
		query.Set("count", fmt.Sprintf("%d", *count))
	case "range":
		path = "/v1/range"
		query.Set("begin", fmt.Sprintf("%d", *begin))
		query.Set("end", fmt.Sprintf("%d", *end))
	case "jitter":
		path = "/v1/jitter"
		if *policy != "" {
			query.Set("policy", *policy)
		} else {
			if *expiration != "" {
				query.Set("expiration", *expiration)
			}
			if *ratio != 0 {
				query.Set("ratio", fmt.Sprintf("%d", *ratio))
			}
		}
	default:
		fmt.Printf("unknown operation: %s\n", *op)
		os.Exit(1)
	}

	requestUrl := fmt.Sprintf("http://%s%s?%s", *host, path, query.Encode())
	body, err := get(requestUrl, *attempts)
	if err != nil {
		fmt.Printf("request error: %s\n", err.Error())
		os.Exit(1)
	}
	fmt.Print(body)
}
