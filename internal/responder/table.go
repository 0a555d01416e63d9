package responder

// Built-in advice data. "chest pain" is listed ahead of "pain" so that the more
// specific entry, with its own heart-attack disclaimer, is reachable.

const (
	emergencyResponse   = "🚨 This sounds like it could be a medical emergency. Please call emergency services (911) immediately or go to the nearest emergency room."
	emergencyDisclaimer = "⚠️ This is a medical emergency. Do not delay seeking immediate medical attention."
)

// DefaultTable returns a fresh copy of the built-in table.
func DefaultTable() Table {
	return Table{
		Keywords: []Entry{
			{
				Keyword:  "chest pain",
				Response: "Chest pain can be serious. Can you describe the pain and any other symptoms you're experiencing?",
				Suggestions: []string{
					"Is the pain sharp or dull?",
					"Does it radiate to your arm, neck, or jaw?",
					"Are you having difficulty breathing?",
					"Do you feel dizzy or lightheaded?",
				},
				Urgency:    UrgencyHigh,
				Disclaimer: "⚠️ Chest pain can be a sign of a heart attack. If you're experiencing severe chest pain, call emergency services immediately.",
			},
			{
				Keyword:  "pain",
				Response: "I understand you're experiencing pain. Can you describe the location, intensity (1-10), and duration of the pain?",
				Suggestions: []string{
					"Where exactly is the pain located?",
					"How would you rate the pain on a scale of 1-10?",
					"When did the pain start?",
					"Is the pain constant or does it come and go?",
				},
				Urgency: UrgencyMedium,
			},
			{
				Keyword:  "headache",
				Response: "Headaches can have various causes. Can you tell me more about the type of headache and any accompanying symptoms?",
				Suggestions: []string{
					"Is it a throbbing or dull pain?",
					"Are you experiencing nausea or sensitivity to light?",
					"Have you had headaches like this before?",
					"Are you under stress or have you been sleeping poorly?",
				},
				Urgency: UrgencyMedium,
			},
			{
				Keyword:  "fever",
				Response: "Fever can indicate an infection or other condition. What's your current temperature and how long have you had it?",
				Suggestions: []string{
					"What's your current temperature?",
					"How long have you had the fever?",
					"Are you experiencing chills or sweating?",
					"Do you have any other symptoms?",
				},
				Urgency: UrgencyHigh,
			},
			{
				Keyword:  "cough",
				Response: "Coughing can be due to various reasons. Can you describe the type of cough and any other symptoms?",
				Suggestions: []string{
					"Is it a dry cough or do you have phlegm?",
					"What color is the phlegm?",
					"How long have you been coughing?",
					"Do you have chest pain or difficulty breathing?",
				},
				Urgency: UrgencyMedium,
			},
			{
				Keyword:  "nausea",
				Response: "Nausea can be caused by many factors. Can you tell me more about when it occurs and any triggers?",
				Suggestions: []string{
					"When does the nausea occur?",
					"Are you vomiting as well?",
					"Have you eaten anything unusual?",
					"Are you taking any medications?",
				},
				Urgency: UrgencyMedium,
			},
			{
				Keyword:  "breathing",
				Response: "Difficulty breathing is concerning. Can you describe your breathing difficulties and any other symptoms?",
				Suggestions: []string{
					"Are you short of breath at rest or only with activity?",
					"Do you have chest tightness?",
					"Are you wheezing or making unusual sounds when breathing?",
					"Have you been exposed to any irritants?",
				},
				Urgency: UrgencyHigh,
			},
			{
				Keyword:  "rash",
				Response: "Skin rashes can have various causes. Can you describe the appearance and any other symptoms?",
				Suggestions: []string{
					"What does the rash look like?",
					"Is it itchy, painful, or burning?",
					"Where on your body is the rash?",
					"Have you used any new products or medications?",
				},
				Urgency: UrgencyLow,
			},
			{
				Keyword:  "fatigue",
				Response: "Fatigue can be caused by many factors. Can you tell me more about your energy levels and sleep patterns?",
				Suggestions: []string{
					"How long have you been feeling fatigued?",
					"Are you getting enough sleep?",
					"Have you been under stress?",
					"Are you eating well and staying hydrated?",
				},
				Urgency: UrgencyLow,
			},
			{
				Keyword:  "dizziness",
				Response: "Dizziness can have various causes. Can you describe when it occurs and any other symptoms?",
				Suggestions: []string{
					"When do you feel dizzy?",
					"Does the room spin or do you feel lightheaded?",
					"Are you experiencing any hearing changes?",
					"Have you had any recent head injuries?",
				},
				Urgency: UrgencyMedium,
			},
		},
		Emergency: Emergency{
			Phrases: []string{
				"emergency",
				"urgent",
				"severe",
				"can't breathe",
				"chest pain",
				"heart attack",
			},
			Response:   emergencyResponse,
			Disclaimer: emergencyDisclaimer,
		},
		General: General{
			Responses: []string{
				"I understand your concern. Can you provide more details about your symptoms?",
				"That's important information. Can you tell me more about when this started?",
				"I'm here to help. Can you describe your symptoms in more detail?",
				"Thank you for sharing that. Are there any other symptoms you're experiencing?",
				"I want to make sure I understand correctly. Can you clarify what you mean?",
				"That sounds concerning. Can you tell me more about the severity and duration?",
			},
			Suggestions: []string{
				"Can you describe your symptoms in more detail?",
				"When did you first notice these symptoms?",
				"Have you experienced anything like this before?",
				"Are you taking any medications?",
			},
		},
		Disclaimers: []string{
			"⚠️ This is not a substitute for professional medical advice. Please consult with a healthcare provider.",
			"⚠️ If you're experiencing a medical emergency, call emergency services immediately.",
			"⚠️ Always consult with a qualified healthcare professional for proper diagnosis and treatment.",
			"⚠️ This information is for educational purposes only and should not replace medical consultation.",
		},
	}
}
