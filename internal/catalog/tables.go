package catalog

// Year-level synonyms. Multi-word entries match across any run of spaces,
// dashes, dots or underscores, so "1st year" also covers "1st-year" and
// "1st.  year". Entries like "lst year" and "fist year" are common OCR
// misreads.
var yearSynonyms = map[YearLevel][]string{
	FirstYear: {
		"1st year", "first year", "1st yr", "first yr", "year 1", "year one",
		"year i", "yr 1", "freshman", "1 st year", "1 st yr", "lst year", "fist year",
	},
	SecondYear: {
		"2nd year", "second year", "2nd yr", "second yr", "year 2", "year two",
		"year ii", "yr 2", "sophomore", "2 nd year", "2 nd yr", "znd year", "2na year",
	},
	ThirdYear: {
		"3rd year", "third year", "3rd yr", "third yr", "year 3", "year three",
		"year iii", "yr 3", "3 rd year", "3 rd yr", "3ra year", "thrid year",
	},
	FourthYear: {
		"4th year", "fourth year", "4th yr", "fourth yr", "year 4", "year four",
		"year iv", "yr 4", "4 th year", "4 th yr", "fouth year", "forth year",
	},
}

var semesterSynonyms = map[Semester][]string{
	FirstSemester: {
		"1st semester", "first semester", "1st sem", "first sem", "semester 1",
		"sem 1", "1st term", "first term", "semester i", "1 st sem",
	},
	SecondSemester: {
		"2nd semester", "second semester", "2nd sem", "second sem", "semester 2",
		"sem 2", "2nd term", "second term", "semester ii", "2 nd sem",
	},
	Summer: {
		"summer", "summer term", "summer class", "midyear", "mid year", "summer session",
	},
	ThirdSemester: {
		"3rd semester", "third semester", "3rd sem", "third sem", "semester 3",
		"sem 3", "3rd term", "third term", "trimester 3",
	},
}

var periodSynonyms = map[GradingPeriod][]string{
	Prelim:  {"prelim", "prelims", "preliminary", "preliminaries"},
	Midterm: {"midterm", "midterms", "mid term"},
	Final:   {"final", "finals", "final term", "tentative final"},
}

var documentSignatures = map[DocumentType][]string{
	DocGrades: {
		"grade", "grades", "final grade", "units", "subject", "course code",
		"descriptive title", "semester", "gwa", "general weighted average",
		"remarks", "passed", "registrar", "transcript", "credits", "school year",
		"academic year",
	},
	DocLetter: {
		"dear", "mayor", "honorable", "hon.", "respectfully", "sincerely",
		"yours truly", "request", "letter", "assistance", "thank you", "scholarship",
	},
	DocIndigency: {
		"certificate of indigency", "indigency", "indigent", "barangay",
		"punong barangay", "this is to certify", "low income", "resident",
		"issued upon request", "barangay captain",
	},
}

// Phrases only a letter carries. A letter that mentions grades in prose is
// still a letter.
var letterPhrases = []string{
	"respectfully", "sincerely", "dear", "yours truly", "honorable", "very truly yours",
}
