package service

import (
	"github.com/storyclass/storyclass-backend/internal/model"
)

// fallbackStoryContent is the provider-failure story. 9 sentences, none
// longer than 9 words; the counts below are literals matching this text.
const fallbackStoryContent = `Emma has a small garden behind her house. Every morning she waters the pretty flowers. A little bird sings on the tall tree. "Can you fly?" Emma asks the bird. "Yes, I can fly very high," it sings. A green frog jumps into the small pond. The frog can swim and jump all day. Emma smiles and says, "I can jump too!" She jumps happily around her sunny garden.`

// FallbackMaterial is the fixed bundle substituted when the provider call
// fails or returns unparsable output.
func FallbackMaterial(req model.GenerationRequest) *model.GeneratedMaterial {
	return &model.GeneratedMaterial{
		Unit: unitFromRequest(req),
		ShortStory: model.ShortStory{
			Title:         "Emma's Garden",
			Content:       fallbackStoryContent,
			WordCount:     69,
			SentenceCount: 9,
		},
		TeacherScript: model.TeacherScript{
			Opening: []string{
				"Good morning, everyone! Today we will meet a girl named Emma. (좋은 아침이에요! 오늘은 엠마라는 소녀를 만날 거예요.)",
				"Do you have a garden at home? What lives there? (집에 정원이 있나요? 거기에 무엇이 사나요?)",
				"Look at the title: 'Emma's Garden'. What do you think happens? (제목을 보세요. 무슨 일이 일어날까요?)",
			},
			DuringReading: []string{
				"Let's read together: 'Emma has a small garden behind her house.' (함께 읽어 봅시다.)",
				"Point to the bird. What is it doing? (새를 가리켜 보세요. 무엇을 하고 있나요?)",
				"Emma asks, 'Can you fly?' Let's all ask together! (엠마가 묻습니다. 다 같이 물어봅시다!)",
				"Show me how the frog jumps! (개구리가 어떻게 점프하는지 보여 주세요!)",
			},
			AfterReading: []string{
				"Who lives in Emma's garden? (엠마의 정원에는 누가 살고 있나요?)",
				"What can the bird do? (새는 무엇을 할 수 있나요?)",
				"What can the frog do? (개구리는 무엇을 할 수 있나요?)",
				"How does Emma feel at the end? (마지막에 엠마의 기분은 어떤가요?)",
			},
			KeyExpressionPractice: []string{
				"Practice: 'Can you...?' - Can you fly? Can you swim? (연습해 봅시다.)",
				"Answer: 'Yes, I can.' or 'No, I can't.' (대답해 봅시다.)",
				"Practice: 'I can...' - I can jump. I can swim. (연습해 봅시다.)",
			},
			RetellingGuidance: []string{
				"Who is the main character? (주인공은 누구인가요?)",
				"Where does the story happen? (이야기는 어디에서 일어나나요?)",
				"What does Emma ask the bird? (엠마는 새에게 무엇을 물어보나요?)",
				"What happens at the end? (마지막에 무슨 일이 일어나나요?)",
			},
			EvaluationCriteria: []string{
				"Can the student name the main character? (학생이 주인공을 말할 수 있는가?)",
				"Can the student name the setting? (학생이 배경을 말할 수 있는가?)",
				"Can the student say what each animal can do? (학생이 동물들이 할 수 있는 일을 말할 수 있는가?)",
				"Can the student use 'Can you...?' and 'I can...' correctly? (핵심 표현을 바르게 사용하는가?)",
			},
			WrapUp: []string{
				"Great job today, everyone! (오늘 모두 잘했어요!)",
				"Remember: the bird can fly, the frog can swim. (기억하세요.)",
				"Just like Emma, you can do many things too! (엠마처럼 여러분도 많은 것을 할 수 있어요!)",
				"See you next time! (다음 시간에 만나요!)",
			},
		},
		RewriteActivities: &model.RewriteActivities{
			VocabularyFill: model.VocabularyFill{
				Instructions:    "Fill in each blank with the correct word from the story. (이야기에 나온 알맞은 단어로 빈칸을 채우세요.)",
				StoryWithBlanks: `Emma has a small ______ behind her house. Every morning she waters the pretty flowers. A little bird sings on the tall tree. "Can you ______?" Emma asks the bird. "Yes, I can fly very high," it sings. A green frog jumps into the small ______. The frog can ______ and jump all day. Emma smiles and says, "I can ______ too!" She jumps happily around her sunny garden.`,
				AnswerWords:     []string{"garden", "fly", "pond", "swim", "jump"},
			},
			FullRewrite: model.FullRewrite{
				Instructions: "Rewrite the story in your own words. Use the key expressions you practiced. (배운 표현을 사용해 이야기를 자신의 말로 다시 써 보세요.)",
				RubricDimensions: []string{
					"Setting (where and when)",
					"Main character",
					"Supporting characters",
					"Initiating event",
					"Character feelings",
					"Goal or plan",
					"Attempts and actions",
					"Outcome",
					"Resolution and lesson",
				},
			},
		},
	}
}

// DemoMaterial is the bundle served when no provider key is configured.
// It predates the fallback material and keeps its original text.
func DemoMaterial(req model.GenerationRequest) *model.GeneratedMaterial {
	return &model.GeneratedMaterial{
		Unit: unitFromRequest(req),
		ShortStory: model.ShortStory{
			Title:         "The Magic Garden",
			Content:       `Once upon a time, there was a little girl named Emma who loved to play in her grandmother's garden. The garden was full of beautiful flowers and tall trees. Emma could see birds flying high in the sky and fish swimming in the small pond. She loved to jump and run around the garden, feeling happy and free. Her grandmother always smiled when she saw Emma playing. "You can do anything you want to do," her grandmother said. Emma felt proud and strong.`,
			WordCount:     89,
			SentenceCount: 6,
		},
		TeacherScript: model.TeacherScript{
			Opening: []string{
				"Good morning, class! Today we're going to read a wonderful story about a little girl and her grandmother's garden.",
				"Before we start, let me ask you: Do you have a garden at home? What can you see in a garden?",
				"Great answers! Now, let's look at the title of our story: 'The Magic Garden'. What do you think this story might be about?",
			},
			DuringReading: []string{
				"Let's read the first sentence together: 'Once upon a time, there was a little girl named Emma...'",
				"Look at this picture. Can you see Emma? What is she doing?",
				"Now let's read: 'The garden was full of beautiful flowers and tall trees.' Point to the flowers in the picture.",
				"Emma can see birds flying. Can you show me how birds fly? Let's all fly like birds!",
				"What about fish? How do fish swim? Let's swim like fish!",
			},
			AfterReading: []string{
				"What was Emma's grandmother's garden like?",
				"What animals did Emma see in the garden?",
				"How did Emma feel when she was playing in the garden?",
				"What did Emma's grandmother say to her?",
				"Do you think Emma is happy? Why?",
			},
			KeyExpressionPractice: []string{
				"Let's practice: 'I can see...' - I can see birds. I can see fish. I can see flowers.",
				"Now let's practice: 'I can...' - I can jump. I can run. I can play.",
				"Let's practice: 'Can you...?' - Can you see the birds? Can you jump? Can you run?",
				"Answer: 'Yes, I can.' or 'No, I can't.'",
			},
			RetellingGuidance: []string{
				"Now, let's tell the story together. Who was the main character?",
				"Where did the story happen?",
				"What did Emma do in the garden?",
				"What did Emma see in the garden?",
				"How did Emma feel?",
				"What did her grandmother say?",
			},
			EvaluationCriteria: []string{
				"Can the student identify the main character?",
				"Can the student name the setting?",
				"Can the student list what Emma saw in the garden?",
				"Can the student express how Emma felt?",
				"Can the student use the key expressions correctly?",
			},
			WrapUp: []string{
				"Great job, everyone! You all did wonderful work today.",
				"Let's remember: Emma could see many things in her grandmother's garden.",
				"Just like Emma, you can do many things too!",
				"For homework, draw a picture of your favorite place and tell me what you can see there.",
				"See you next time!",
			},
		},
	}
}

// FallbackEvaluation is the neutral all-70 grading substituted when the
// grading output cannot be parsed.
func FallbackEvaluation() *model.EvaluationResult {
	return &model.EvaluationResult{
		OverallScore:      70,
		ContentAccuracy:   70,
		QuestionRelevance: 70,
		LanguageUsage:     70,
		Completeness:      70,
		Feedback:          "답변을 평가했습니다. 더 구체적인 피드백을 위해 다시 시도해주세요.",
		Suggestions: []string{
			"더 자세한 답변을 시도해보세요",
			"스토리 내용을 다시 확인해보세요",
		},
		Strengths:           []string{"답변을 시도했습니다"},
		AreasForImprovement: []string{"답변의 완성도를 높여보세요"},
	}
}
