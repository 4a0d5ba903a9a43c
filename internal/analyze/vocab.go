// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

// Closed detection vocabularies. These are static lookup data loaded once at
// process start; detection order is by position in the question, not by
// position in these lists, so list order carries no meaning beyond grouping.

// Conditions is the closed vocabulary of medical conditions.
var Conditions = []string{
	"diabetes",
	"prediabetes",
	"cancer",
	"arthritis",
	"osteoarthritis",
	"rheumatoid arthritis",
	"hypertension",
	"heart failure",
	"atrial fibrillation",
	"coronary artery disease",
	"stroke",
	"obesity",
	"asthma",
	"copd",
	"depression",
	"anxiety",
	"dementia",
	"alzheimer",
	"osteoporosis",
	"chronic kidney disease",
	"migraine",
	"sepsis",
}

// Interventions is the closed vocabulary of interventions. Disjoint from
// Conditions by construction.
var Interventions = []string{
	"metformin",
	"statins",
	"statin",
	"insulin",
	"biologics",
	"telemedicine",
	"telehealth",
	"glp-1",
	"semaglutide",
	"sglt2",
	"empagliflozin",
	"aspirin",
	"anticoagulation",
	"chemotherapy",
	"immunotherapy",
	"radiotherapy",
	"bariatric surgery",
	"cognitive behavioral therapy",
	"exercise",
	"mediterranean diet",
	"vaccination",
	"acupuncture",
}
