package compiler

import "github.com/limaJavier/classtables/pkg/constraints"

type WeightOptions struct {
	Default     int `mapstructure:"default"`
	LunchEndDay int `mapstructure:"lunch_end_day"`
}

type SubjectOptions struct {
	Lunch         string `mapstructure:"lunch"`
	FreeAfternoon string `mapstructure:"free_afternoon"`
}

type Options struct {
	Weights  WeightOptions  `mapstructure:"weights"`
	Subjects SubjectOptions `mapstructure:"subjects"`
}

func DefaultOptions() Options {
	return Options{
		Weights: WeightOptions{
			Default:     constraints.HardWeight,
			LunchEndDay: constraints.SoftWeight,
		},
		Subjects: SubjectOptions{
			Lunch:         "LUNCH",
			FreeAfternoon: "FREE_AFTERNOON",
		},
	}
}
