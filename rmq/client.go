package rmq

import (
	"text2phenotype.com/hmt/logger"
	"fmt"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
)

type Config struct {
	Host                    string `envconfig:"MDL_COMN_RMQ_HOST" required:"true"`
	Port                    string `envconfig:"MDL_COMN_RMQ_PORT" required:"true"`
	Username                string `envconfig:"MDL_COMN_RMQ_USERNAME" required:"true"`
	Password                string `envconfig:"MDL_COMN_RMQ_PASSWORD" required:"true"`
	Exchange                string `envconfig:"MDL_COMN_RMQ_DEFAULT_EXCHANGE" default:"text2phenotype-default-exchange"`
	MaxParallelRequestCount int    `envconfig:"HMT_MQ_MAX_PARALLEL_REQUESTS" default:"5"`
	HMTTaskQueue            string `envconfig:"MDL_COMN_HMT_TASK_QUEUE" required:"true"`
	SequencerTaskQueue      string `envconfig:"MDL_COMN_SEQUENCER_TASK_QUEUE" required:"true"`
}

// Client serves the one queue pair this service has: deliveries come in
// from the HMT task queue, results go out to the sequencer queue. Both
// channels share a single connection; each gets its own NotifyClose stream
// so the worker can tell which side died.
type Client struct {
	Deliveries    <-chan amqp.Delivery
	ConsumeErrors <-chan *amqp.Error
	PublishErrors <-chan *amqp.Error
	config        Config
	conn          *amqp.Connection
	pubChannel    *amqp.Channel
	hmtLogger     *zerolog.Logger
}

func NewClient() (*Client, error) {
	hmtLogger := logger.NewLogger("RMQ client")
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		hmtLogger.Error().Err(err).Msg("Could not read env config")
		return nil, err
	}

	url := fmt.Sprintf("amqp://%s:%s@%s:%s", config.Username, config.Password, config.Host, config.Port)
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed connection: %s", err)
	}
	consumeChannel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open consume channel: %s", err)
	}
	pubChannel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open publish channel: %s", err)
	}

	q, err := consumeChannel.QueueDeclarePassive(
		config.HMTTaskQueue, // name
		true,                // durable
		false,               // delete when unused
		false,               // exclusive
		false,               // no-wait
		nil,                 // arguments
	)
	if err != nil {
		return nil, err
	}
	if err := consumeChannel.QueueBind(
		config.HMTTaskQueue,
		config.HMTTaskQueue,
		config.Exchange,
		false,
		nil); err != nil {
		return nil, err
	}
	if err := consumeChannel.Qos(config.MaxParallelRequestCount, 0, false); err != nil {
		return nil, fmt.Errorf("qos: %s", err)
	}

	deliveries, err := consumeChannel.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("consume deliveries: %s", err)
	}

	return &Client{
		Deliveries:    deliveries,
		ConsumeErrors: consumeChannel.NotifyClose(make(chan *amqp.Error)),
		PublishErrors: pubChannel.NotifyClose(make(chan *amqp.Error)),
		config:        config,
		conn:          conn,
		pubChannel:    pubChannel,
		hmtLogger:     &hmtLogger,
	}, nil
}

func (c *Client) SendMessageToSequencer(msg amqp.Publishing) error {
	return c.pubChannel.Publish(
		c.config.Exchange,
		c.config.SequencerTaskQueue,
		false,
		false,
		msg)
}

func (c *Client) Close() {
	_ = c.conn.Close()
}
