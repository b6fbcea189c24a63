package validator

import (
	"github.com/bookverse/bookverse/errors"
	"github.com/bookverse/bookverse/model"
)

func ValidateBookCreateRequest(req *model.BookCreateRequest) error {
	if req == nil {
		return errors.Validation("book is nil")
	}
	if req.Title == "" {
		return errors.Validation("title is empty")
	}
	if req.Author == "" {
		return errors.Validation("author is empty")
	}
	return nil
}

func ValidateReviewCreateRequest(req *model.ReviewCreateRequest) error {
	if req == nil {
		return errors.Validation("review is nil")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return errors.Validation("rating must be between 1 and 5")
	}
	return nil
}

func ValidateReadingStatusRequest(req *model.ReadingStatusRequest) error {
	if req == nil {
		return errors.Validation("request is nil")
	}
	if !req.Status.IsValid() {
		return errors.Validation("unknown reading status: %s", req.Status)
	}
	return nil
}
