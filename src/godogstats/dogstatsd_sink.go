package godogstats

import (
	"strconv"
	"strings"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	gostats "github.com/lyft/gostats"
	logger "github.com/sirupsen/logrus"
)

type godogStatsSink struct {
	client *statsd.Client
	config struct {
		host string
		port int
	}
}

// ensure that godogStatsSink implements gostats.Sink
var _ gostats.Sink = (*godogStatsSink)(nil)

type goDogStatsSinkOption func(*godogStatsSink)

func WithStatsdHost(host string) goDogStatsSinkOption {
	return func(g *godogStatsSink) {
		g.config.host = host
	}
}

func WithStatsdPort(port int) goDogStatsSinkOption {
	return func(g *godogStatsSink) {
		g.config.port = port
	}
}

func NewSink(opts ...goDogStatsSinkOption) (*godogStatsSink, error) {
	sink := &godogStatsSink{}
	for _, opt := range opts {
		opt(sink)
	}
	client, err := statsd.New(sink.config.host+":"+strconv.Itoa(sink.config.port), statsd.WithoutClientSideAggregation())
	if err != nil {
		return nil, err
	}
	sink.client = client
	return sink, nil
}

// separateTags separates the metric name and tags from the combined serialized metric name.
// e.g. given input: "entropyd.policy.session_token.hits.__COMMIT=12345.__DEPLOY=67890"
// this should produce output: "entropyd.policy.session_token.hits", ["COMMIT:12345", "DEPLOY:67890"]
// Aligns to how tags are serialized here https://github.com/lyft/gostats/blob/49e70f1b7932d146fecd991be04f8e1ad235452c/internal/tags/tags.go#L335
func separateTags(name string) (string, []string) {
	const (
		prefix = ".__"
		sep    = "="
	)

	// split the name and tags about the first prefix for extra tags
	shortName, tagString, hasTags := strings.Cut(name, prefix)
	if !hasTags {
		return name, nil
	}

	// split the tags at every instance of prefix
	tagPairs := strings.Split(tagString, prefix)
	tags := make([]string, 0, len(tagPairs))
	for _, tagPair := range tagPairs {
		// split the name + value by the seperator
		tagName, tagValue, isValid := strings.Cut(tagPair, sep)
		if !isValid {
			logger.Debugf("godogstats sink found malformed extra tag: %v, string: %v", tagPair, name)
			continue
		}
		tags = append(tags, tagName+":"+tagValue)
	}

	return shortName, tags
}

func (g *godogStatsSink) FlushCounter(name string, value uint64) {
	name, tags := separateTags(name)
	g.client.Count(name, int64(value), tags, 1.0)
}

func (g *godogStatsSink) FlushGauge(name string, value uint64) {
	name, tags := separateTags(name)
	g.client.Gauge(name, float64(value), tags, 1.0)
}

func (g *godogStatsSink) FlushTimer(name string, milliseconds float64) {
	name, tags := separateTags(name)
	duration := time.Duration(milliseconds) * time.Millisecond
	g.client.Timing(name, duration, tags, 1.0)
}
