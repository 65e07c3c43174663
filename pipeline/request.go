package pipeline

type Request struct {
	Text string `json:"redis_key"`
	Tid  string `json:"tid"`
}

type Pipeline func(request Request) <-chan string
