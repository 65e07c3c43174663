package tasks

import "text2phenotype.com/hmt/redis"

type Client struct {
	Tags TagTasks
}

// NewClient is the preferred way of working with task documents.
func NewClient() (Client, error) {
	tagsRedisClient, err := redis.NewClient(TagsDB)
	if err != nil {
		return Client{}, err
	}
	return Client{
		Tags: TagTasks{client: tagsRedisClient},
	}, nil
}

func (client *Client) Close() {
	_ = client.Tags.client.Close()
}
