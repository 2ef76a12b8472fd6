package domain

// QuestionCount is the fixed length of the question bank.
const QuestionCount = 15

var questionBank = []Question{
	{
		Prompt:        "Who is summoned as the Shield Hero?",
		Options:       []string{"Naofumi Iwatani", "Ren Amaki", "Motoyasu Kitamura", "Itsuki Kawasumi"},
		CorrectAnswer: "Naofumi Iwatani",
	},
	{
		Prompt:        "Which legendary weapon is Naofumi bound to?",
		Options:       []string{"Sword", "Shield", "Spear", "Bow"},
		CorrectAnswer: "Shield",
	},
	{
		Prompt:        "Who is the first companion Naofumi takes in from the slave trader?",
		Options:       []string{"Filo", "Melty", "Raphtalia", "Rishia"},
		CorrectAnswer: "Raphtalia",
	},
	{
		Prompt:        "What kind of being is Raphtalia?",
		Options:       []string{"Therianthrope", "Demi-human", "Human", "Filolial"},
		CorrectAnswer: "Demi-human",
	},
	{
		Prompt:        "Which kingdom summons the four Cardinal Heroes?",
		Options:       []string{"Siltvelt", "Faubrey", "Melromarc", "Q'ten Lo"},
		CorrectAnswer: "Melromarc",
	},
	{
		Prompt:        "What does Naofumi buy that later hatches into Filo?",
		Options:       []string{"Dragon egg", "Monster seed", "Slime core", "Filolial egg"},
		CorrectAnswer: "Filolial egg",
	},
	{
		Prompt:        "Who falsely accuses Naofumi and steals his belongings?",
		Options:       []string{"Malty", "Melty", "Rishia", "Therese"},
		CorrectAnswer: "Malty",
	},
	{
		Prompt:        "What do the people of Melromarc call Naofumi after the accusation?",
		Options:       []string{"The Iron Wall", "The Devil of the Shield", "The Fallen Hero", "The Saint of the Bird God"},
		CorrectAnswer: "The Devil of the Shield",
	},
	{
		Prompt:        "Which recurring calamity threatens the world?",
		Options:       []string{"The Great Flood", "The Eclipse of Souls", "The Waves of Catastrophe", "The Demon Tide"},
		CorrectAnswer: "The Waves of Catastrophe",
	},
	{
		Prompt:        "Who is the Bow Hero?",
		Options:       []string{"Ren Amaki", "Motoyasu Kitamura", "Naofumi Iwatani", "Itsuki Kawasumi"},
		CorrectAnswer: "Itsuki Kawasumi",
	},
	{
		Prompt:        "Who is the true ruler of Melromarc?",
		Options:       []string{"Mirellia Q Melromarc", "Aultcray Melromarc", "Malty S Melromarc", "Melty Q Melromarc"},
		CorrectAnswer: "Mirellia Q Melromarc",
	},
	{
		Prompt:        "Which skill lets Naofumi reproduce the abilities of other weapons?",
		Options:       []string{"Shield Prison", "Air Strike Shield", "Change Shield", "Shield Copy"},
		CorrectAnswer: "Shield Copy",
	},
	{
		Prompt:        "Whose core does Naofumi absorb, feeding the Shield of Wrath?",
		Options:       []string{"Spirit Tortoise", "Zombie Dragon", "Phoenix", "Chimera"},
		CorrectAnswer: "Zombie Dragon",
	},
	{
		Prompt:        "What is Filo revealed to be?",
		Options:       []string{"Dragon Emperor", "Bird God", "Queen of the Filolials", "Spirit Tortoise Guardian"},
		CorrectAnswer: "Queen of the Filolials",
	},
	{
		Prompt:        "What powers the cursed Shield of Wrath?",
		Options:       []string{"Raphtalia's courage", "The Queen's blessing", "Filo's appetite", "Naofumi's anger and hatred"},
		CorrectAnswer: "Naofumi's anger and hatred",
	},
}

// Questions returns a copy of the fixed question bank with indexes set.
func Questions() []Question {
	out := make([]Question, len(questionBank))
	for i, q := range questionBank {
		q.Index = i
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}

// AnswerKey returns the correct answer of every question in order.
func AnswerKey() []string {
	key := make([]string, len(questionBank))
	for i, q := range questionBank {
		key[i] = q.CorrectAnswer
	}
	return key
}
