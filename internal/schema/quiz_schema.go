package schema

// schemaSource defines the authoring aggregate. Structs are left open ("...")
// so descriptive passthrough fields survive validation; every optional field
// carries a default so a bare partial unifies to a complete value.
const schemaSource = `
#ExerciseRef: {
	exercise_id:     string & !=""
	title:           string | *""
	num_assessments: int & >=0 | *0
	...
}

#QuestionRef: {
	question_id:         string & !=""
	exercise_id:         string & !=""
	title:               string | *""
	counter_in_exercise: int & >=0 | *0
	...
}

#Section: {
	section_id:               string & !=""
	section_title:            string | *""
	description:              string | *""
	exercise_pool:            [...#ExerciseRef] | *[]
	questions:                [...#QuestionRef] | *[]
	learners_see_fixed_order: bool | *false
	...
}

#Quiz: {
	id:       string | *""
	title:    string | *""
	sections: [...#Section] | *[]
	seed:     int & >=0 | *0
	...
}
`
