package worker

import (
	"github.com/bookverse/bookverse/model"
)

type WorkPool interface {
	Push(job model.Job)
}
