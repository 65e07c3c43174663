package worker

import (
	"text2phenotype.com/hmt/rmq"
	"encoding/json"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
)

type rmqTransactions interface {
	pingSequencer(task *Task, message Message) error
	acknowledgeDelivery(delivery *amqp.Delivery) error
	rejectDelivery(delivery *amqp.Delivery, hmtLogger *zerolog.Logger)
	getDeliveriesCh() <-chan amqp.Delivery
	getConsumeErrorsCh() <-chan *amqp.Error
	getPublishErrorsCh() <-chan *amqp.Error
	close()
}

type rmqClientWrapper struct {
	rmqClient *rmq.Client
}

func (wrapper *rmqClientWrapper) close() {
	wrapper.rmqClient.Close()
}

func (wrapper *rmqClientWrapper) getDeliveriesCh() <-chan amqp.Delivery {
	return wrapper.rmqClient.Deliveries
}

func (wrapper *rmqClientWrapper) getConsumeErrorsCh() <-chan *amqp.Error {
	return wrapper.rmqClient.ConsumeErrors
}

func (wrapper *rmqClientWrapper) getPublishErrorsCh() <-chan *amqp.Error {
	return wrapper.rmqClient.PublishErrors
}

func (wrapper *rmqClientWrapper) pingSequencer(task *Task, message Message) error {
	message.Sender = "hmt"
	b, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return wrapper.rmqClient.SendMessageToSequencer(
		amqp.Publishing{
			ContentType: task.delivery.ContentType,
			Body:        b,
		},
	)
}

func (wrapper *rmqClientWrapper) acknowledgeDelivery(delivery *amqp.Delivery) error {
	return delivery.Ack(false)
}

func (wrapper *rmqClientWrapper) rejectDelivery(delivery *amqp.Delivery, hmtLogger *zerolog.Logger) {
	if delivery.Redelivered {
		hmtLogger.Info().Msg("Rejecting delivery as it already has been redelivered")
		err := delivery.Reject(false)
		if err != nil {
			hmtLogger.Err(err).Msg("Failed to reject delivery")
		}
		return
	}
	hmtLogger.Info().Msg("Requeuing delivery as it has not been redelivered yet")
	err := delivery.Reject(true)
	if err != nil {
		hmtLogger.Err(err).Msg("Failed to requeue delivery")
	}
}
