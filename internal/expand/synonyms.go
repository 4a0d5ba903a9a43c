// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package expand

// Synonyms maps a search term to its lexical variants for query
// construction. This table widens what the backend matches; the validator
// keeps its own, separate matching table. Keys and variants are lowercase.
var Synonyms = map[string][]string{
	// conditions
	"diabetes":      {"diabetes mellitus", "type 2 diabetes", "t2dm", "diabetic"},
	"hypertension":  {"high blood pressure", "elevated blood pressure", "hypertensive"},
	"cancer":        {"neoplasm", "malignancy", "tumor", "oncology"},
	"obesity":       {"overweight", "adiposity", "weight loss"},
	"heart failure": {"cardiac failure", "chf", "hfref"},
	"depression":    {"depressive disorder", "major depression", "mdd"},
	"asthma":        {"bronchial asthma", "airway hyperresponsiveness"},
	"copd":          {"chronic obstructive pulmonary disease", "emphysema"},
	"stroke":        {"cerebrovascular accident", "ischemic stroke"},
	"dementia":      {"cognitive decline", "alzheimer disease"},
	"arthritis":     {"osteoarthritis", "joint disease"},
	"migraine":      {"migraine headache", "chronic migraine"},

	// interventions
	"telemedicine": {"telehealth", "remote monitoring", "digital health", "mhealth"},
	"metformin":    {"biguanide", "glucophage"},
	"statins":      {"statin", "hmg-coa reductase inhibitor"},
	"statin":       {"statins", "hmg-coa reductase inhibitor"},
	"insulin":      {"insulin therapy", "basal insulin"},
	"biologics":    {"biologic therapy", "monoclonal antibody"},
	"glp-1":        {"glp-1 receptor agonist", "semaglutide", "liraglutide"},
	"semaglutide":  {"glp-1 receptor agonist", "ozempic"},
	"sglt2":        {"sglt2 inhibitor", "empagliflozin", "dapagliflozin"},
	"exercise":     {"physical activity", "aerobic training", "resistance training"},
	"vaccination":  {"vaccine", "immunization"},

	// other frequent question concepts
	"biomarker":  {"biomarkers", "biological marker", "surrogate marker"},
	"biomarkers": {"biomarker", "biological marker", "surrogate marker"},
	"screening":  {"early detection", "screening program"},
	"adherence":  {"compliance", "medication adherence"},
	"elderly":    {"older adults", "geriatric", "aged"},
	"older":      {"elderly", "geriatric", "aged"},
	"pediatric":  {"children", "paediatric", "childhood"},
	"pregnancy":  {"pregnant", "gestational", "maternal"},
}
