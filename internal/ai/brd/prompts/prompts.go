// Package prompts содержит тексты промптов для всех этапов конвейера BRD.
// Требования к форме ответа (строгий JSON, отсутствие преамбулы) заданы
// только текстом промпта; разбор и запасные варианты — на стороне service.
package prompts

import "fmt"

const rewordTemplate = `You are an expert Business Analyst.
Your task is to carefully analyze the provided content,
which may include email chains, meeting notes, or transcriptions.
Based on this analysis, create a comprehensive, concise and structured writeup.
This writeup will serve as input notes for the detailed preparation of a Business Requirements Document (BRD).
Ensure that your writeup captures all key points, decisions, and action items relevant to the project or business process.

%s

Your task is to generate a JSON object with the following structure:
{
  "title": "One line title summarizing the main topic",
  "description": "A brief writeup"
}

Guidelines for the response:
1. The response must be a valid JSON object.
2. Do not include any text before or after the JSON object.
3. The "title" should be a concise, one-line summary.
4. The "description" should be extensive, typically several paragraphs long, covering all aspects of the analyzed content in detail.
5. Include all key points, decisions, action items, and relevant information from the document in the description.
6. Ensure proper JSON formatting, including using double quotes for strings and escaping any special characters.

Remember, your entire response should be a single, valid JSON object.`

// Reword строит промпт этапа структурированного пересказа
func Reword(input string) string {
	return fmt.Sprintf(rewordTemplate, input)
}

const completionCheckTemplate = `As an experienced project manager, analyze the following BRD summary and determine if additional details are needed:

%s

Use the following template to structure your BRD:

%s

Consider the following aspects:
1. Project scope: Is it clearly defined?
2. Stakeholder requirements: Are all key stakeholders' needs addressed?
3. Technical specifications: Are there enough details for the development team?
4. Timeline and milestones: Are they mentioned or need to be clarified?
5. Budget considerations: Is there any mention of budget constraints or requirements?
6. Risk assessment: Are potential risks identified or do they need to be addressed?
7. Success criteria: Are the project's success metrics clearly defined?

Based on your analysis, respond with a JSON object in the following format:
{
    "status": "need" or "not_need",
    "details": [] (empty list if status is "not_need", otherwise list of required details)
}

If "need" status is determined, provide specific questions or points that need clarification in the "details" list.

Instructions:
1. Ensure your entire response is a valid JSON object.
2. Do not include any text before or after the JSON object.
3. Use double quotes for all strings in the JSON.
4. The "status" field must be exactly "need" or "not_need".
5. The "details" field must be a list, even if it's empty.
6. Do not include any explanations or additional text outside the JSON structure.
7. Verify that your response can be parsed as JSON before submitting.`

// CompletionCheck строит промпт этапа оценки полноты сводки
func CompletionCheck(summary, template string) string {
	return fmt.Sprintf(completionCheckTemplate, summary, template)
}

const creationTemplate = `As a senior business analyst, create a comprehensive Business Requirements Document (BRD) based on the following information:

Initial Summary:
%s

Additional Details:
%s

Use the following template to structure your BRD:

%s

Ensure that you:
- Refer to these instructions and ask for any missing information related to them.
- Address all points mentioned in the initial summary and additional details.
- Provide clear, actionable requirements using industry-standard terminology and formatting.
- Fill in the document with appropriate content for each section, using placeholders for any information that may need to be filled in later.
- Avoid adding any extra text, such as introductory statements.
- Do not add any preamble like "Here is a comprehensive Business Requirements Document (BRD) for the project".

Create a detailed and professional BRD that could be presented to senior management and technical teams.`

// Creation строит промпт этапа создания черновика BRD
func Creation(summary, detailsJSON, template string) string {
	return fmt.Sprintf(creationTemplate, summary, detailsJSON, template)
}

const reviewTemplate = `As a senior project manager and business analyst, review the following Business Requirements Document (BRD) and provide comprehensive feedback:

%s

In your review, please consider the following aspects:
1. Completeness: Are all necessary sections present and adequately detailed?
2. Clarity: Is the document easy to understand for both technical and non-technical stakeholders?
3. Consistency: Are there any contradictions or inconsistencies in the requirements?
4. Feasibility: Do the requirements seem realistic and achievable?
5. Traceability: Can each requirement be traced back to a business need or stakeholder request?
6. Testability: Are the requirements specific enough to be tested?
7. Prioritization: Is there a clear indication of which requirements are must-haves vs. nice-to-haves?
8. Risks: Are potential risks adequately identified and addressed?
9. Compliance: Does the document adhere to any relevant industry standards or regulations?
10. Overall quality: Does the document meet the standards expected of a professional BRD?

Provide detailed feedback, including:
- Strengths of the document
- Areas for improvement
- Specific suggestions for enhancing the BRD
- Any critical omissions or concerns

Your review should be thorough and constructive, aimed at improving the overall quality and effectiveness of the BRD.`

// Review строит промпт этапа рецензирования черновика
func Review(document string) string {
	return fmt.Sprintf(reviewTemplate, document)
}

// SummarizeInstruction — вводная для пофайловой суммаризации
func SummarizeInstruction(description string) string {
	return fmt.Sprintf("Summarize the following document: %s", description)
}
