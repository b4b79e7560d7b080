package cli

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/mikesmitty/hygrometry/pkg/mqtt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errNoBroker = errors.New("mqtt broker is needed to publish")

func Publish() func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		errChk(publish(args))
	}
}

func publish(args []string) error {
	v, err := parseFloats(args, "temperature", "humidity")
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	broker := viper.GetString("mqtt-broker")
	if broker == "" {
		return errNoBroker
	}
	mqttUrl, err := url.Parse(broker)
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	e := solve(v[0], v[1], viper.GetFloat64("pressure"), viper.GetInt("max-iterations"))

	mc := mqtt.NewClient(mqttUrl)
	if err := mc.Connect(); err != nil {
		return err
	}
	defer mc.Close()
	return mc.PublishEnv(e)
}
