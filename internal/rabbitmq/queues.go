package rabbitmq

// declareQueues makes sure every queue exists and survives broker restarts.
func declareQueues(ch channel, queues []string) error {
	for _, queue := range queues {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return err
		}
	}

	return nil
}
