// Command normalize prints the BookingRecord for a webhook payload read from a
// file or stdin. It does not touch the database.
package main

import (
	"encoding/json"
	"flag"
	"io"
	"os"
	_ "time/tzdata"

	"github.com/sirupsen/logrus"

	"bookinghook/internal/config"
	"bookinghook/internal/modules/webhook"
	"bookinghook/internal/pkg/payload"
)

func main() {
	in := flag.String("in", "-", "payload file, - for stdin")
	pretty := flag.Bool("pretty", true, "indent output")
	flag.Parse()

	logrus.SetOutput(os.Stderr)
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	raw, err := readInput(*in)
	if err != nil {
		logrus.WithError(err).Fatal("read payload failed")
	}
	var body payload.Object
	if err := json.Unmarshal(raw, &body); err != nil {
		logrus.WithError(err).Fatal("payload is not a JSON object")
	}

	normalizer, err := webhook.NewNormalizerFromConfig(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("normalizer setup failed")
	}
	rec, err := normalizer.Normalize(body, nil)
	if err != nil {
		logrus.WithError(err).Fatal("payload rejected")
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(rec); err != nil {
		logrus.WithError(err).Fatal("write record failed")
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
