package worker

import (
	"github.com/bookverse/bookverse/model"
)

type Worker interface {
	Run(c <-chan model.Job)
}
