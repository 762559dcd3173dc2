package leadgen

import (
	"fmt"
	"time"
)

// System prompts used by the pipeline stages.
const (
	querySystemPromptFmt   = "You are researching leads for a %s business in %s."
	enrichSystemPrompt     = "You are a lead generation assistant that extracts contact information and relevant details from web content."
	briefingSystemPrompt   = "You are a lead generation specialist creating concise, actionable briefings for business development."
	editorSystemPrompt     = "You are a professional business development consultant compiling a comprehensive lead generation report."
	queryGuidelineSuffix   = "Generate exactly 4 search queries, each on a new line, with no numbering or bullet points."
	briefingBlockDelimiter = "\n\n---\n\n"
)

func queryUserPrompt(categoryPrompt string, now time.Time) string {
	return fmt.Sprintf("Researching potential leads on %s.\n%s", now.Format("January 2, 2006"), categoryPrompt)
}

func directQueryPrompt(p Params, year int) string {
	return fmt.Sprintf(`As a Direct Leads Analyst, your task is to generate search queries that will help find specific businesses
or individuals who could be potential direct customers for a %s business in %s.

Target Customers:
%s

Your search queries should:
- Focus on finding specific companies, organizations, or individuals who match the target customer profile
- Be designed to find lists, directories, or databases of potential clients
- Include location-specific terms to find local businesses or individuals
- Target current information (include %d where relevant)
- Be very specific and actionable

%s`, p.BusinessTypeOrDefault(), p.Location, p.TargetCustomers, year, queryGuidelineSuffix)
}

func partnershipQueryPrompt(p Params, year int) string {
	return fmt.Sprintf(`As a Partnership Analyst, your task is to generate search queries that will help find potential
business partners for a %s business in %s who serve the same target audience.

Who to Reach Out To:
%s

Your search queries should:
- Focus on finding complementary businesses who serve the same customer base
- Target businesses mentioned in the outreach channels list
- Look for established businesses that might be interested in partnerships
- Include location-specific terms to find local partners
- Target current information (include %d where relevant)
- Be very specific and actionable

%s`, p.BusinessTypeOrDefault(), p.Location, p.OutreachChannels, year, queryGuidelineSuffix)
}

func communityQueryPrompt(p Params, year int) string {
	return fmt.Sprintf(`As a Community Analyst, your task is to generate search queries that will help find online communities,
forums, social media groups, and platforms where the target audience for a %s business in %s is active.

Target Customers:
%s

Who to Reach Out To:
%s

Your search queries should:
- Focus on finding Facebook groups, Reddit communities, forums, or online directories
- Target platforms specific to %s or the region
- Look for active online communities where potential customers gather
- Find online directories or listings that are industry-specific
- Target current information (include %d where relevant)
- Be very specific and actionable

%s`, p.BusinessTypeOrDefault(), p.Location, p.TargetCustomers, p.OutreachChannels, p.Location, year, queryGuidelineSuffix)
}

func eventsQueryPrompt(p Params, year int) string {
	return fmt.Sprintf(`As an Events Analyst, your task is to generate search queries that will help find relevant events,
conferences, trade shows, and expos for a %s business in %s.

Who to Reach Out To:
%s

Your search queries should:
- Focus on finding upcoming industry events, expos, trade shows, and conferences
- Target events in %s or nearby areas
- Look for events mentioned in the outreach channels
- Include the current or upcoming year (%d or %d)
- Find event organizers and their contact information
- Be very specific and actionable

%s`, p.BusinessTypeOrDefault(), p.Location, p.OutreachChannels, p.Location, year, year+1, queryGuidelineSuffix)
}

func influencerQueryPrompt(p Params, year int) string {
	return fmt.Sprintf(`As an Influencer Analyst, your task is to generate search queries that will help find key individuals,
influencers, bloggers, and media outlets that influence the target audience for a %s business in %s.

Target Customers:
%s

Your search queries should:
- Focus on finding industry-specific influencers, bloggers, and content creators
- Target local influencers in %s when possible
- Look for media outlets, magazines, or publications that cover the industry
- Find popular social media accounts that potential customers follow
- Target current information (include %d where relevant)
- Be very specific and actionable

%s`, p.BusinessTypeOrDefault(), p.Location, p.TargetCustomers, p.Location, year, queryGuidelineSuffix)
}

func enrichUserPrompt(content string, category Category, businessType, location string) string {
	return fmt.Sprintf(`Extract the most relevant information from this content about potential leads for a %s business in %s.

This content is from a %s search.

Content:
%s

Extract and format the following information:
1. Names of relevant companies, organizations, or individuals
2. Contact information (emails, phone numbers, websites)
3. Social media profiles or handles
4. Physical addresses if available
5. Brief description of why this is a good lead
6. Any other relevant details for lead generation

Format your response as structured information that can be easily parsed. Only include information that is actually present in the content.
`, businessType, location, category, content)
}

func briefingUserPrompt(categoryName, combinedContent string, p Params) string {
	return fmt.Sprintf(`Create a concise, actionable briefing about %s for a %s business in %s.

Target Customers:
%s

Outreach Channels:
%s

Information from research:
%s

Your task is to compile this information into a clear, structured briefing that:
1. Starts with a brief overview of this lead category
2. Lists the specific leads found with their contact information
3. Provides concrete next steps or outreach strategies
4. Formats the information in clear Markdown with proper headings and bullet points

Focus on actionable information that can be used for lead generation. Be specific and practical.
`, categoryName, p.BusinessTypeOrDefault(), p.Location, p.TargetCustomers, p.OutreachChannels, combinedContent)
}

func editorUserPrompt(combinedBriefings string, p Params) string {
	return fmt.Sprintf(`Compile the following lead generation briefings into a comprehensive, well-structured report for a %s business in %s.

Target Customers:
%s

Outreach Channels:
%s

Briefings:
%s

Your task is to:
1. Create a professional, executive-summary style introduction that explains the purpose and scope of this lead generation report
2. Organize the briefings in a logical order, maintaining their content but improving the formatting and flow
3. Add an executive summary at the beginning that highlights the most promising leads across all categories
4. Add a "Next Steps" section at the end with a prioritized action plan
5. Format everything in clean, professional Markdown with consistent headings, bullet points, and styling

Make sure the report is action-oriented, with clear recommendations for follow-up on the most promising leads.
`, p.BusinessTypeOrDefault(), p.Location, p.TargetCustomers, p.OutreachChannels, combinedBriefings)
}

func reportTitle(businessType, location string, now time.Time) string {
	return fmt.Sprintf("# Lead Generation Report: %s in %s\n\n**Generated on %s**\n\n",
		businessType, location, now.Format("January 2, 2006"))
}
