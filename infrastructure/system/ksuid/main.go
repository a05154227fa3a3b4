package ksuid

import (
	"github.com/rotisserie/eris"
	"github.com/segmentio/ksuid"
	domainKsuid "github.com/t-kuni/ngpkgsync/domain/system/ksuid"
	"github.com/t-kuni/ngpkgsync/domain/system/timer"
)

type KsuidGenerator struct {
	timer timer.ITimer
}

// NewKsuidGenerator ids embed the timer's clock so history directories sort by run time.
func NewKsuidGenerator(timer timer.ITimer) domainKsuid.IKsuid {
	return &KsuidGenerator{timer: timer}
}

func (k *KsuidGenerator) New() string {
	id, err := ksuid.NewRandomWithTime(k.timer.Now())
	if err != nil {
		panic(eris.Wrap(err, "failed to generate ksuid"))
	}
	return id.String()
}
